package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a MySQL/MariaDB-backed Store for fleets of agents that
// centralize their audit trail in a shared database. One append-only
// events table, no plan-state persistence.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore opens a connection using dsn (see
// github.com/go-sql-driver/mysql for DSN format) and ensures its schema
// exists.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open mysql: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: ping mysql: %w", err)
	}

	store := &MySQLStore{db: db}
	if err := store.createSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *MySQLStore) createSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS journal_events (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id VARCHAR(255) NOT NULL,
			seq INT NOT NULL,
			node_description TEXT NOT NULL,
			phase VARCHAR(64) NOT NULL,
			message TEXT NOT NULL,
			timestamp VARCHAR(64) NOT NULL,
			UNIQUE KEY uniq_run_seq (run_id, seq),
			KEY idx_run_id (run_id)
		) ENGINE=InnoDB
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("journal: create schema: %w", err)
	}
	return nil
}

// Append records e.
func (s *MySQLStore) Append(ctx context.Context, e Event) error {
	const q = `
		INSERT INTO journal_events (run_id, seq, node_description, phase, message, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, q, e.RunID, e.Seq, e.NodeDescription, e.Phase, e.Message, e.Timestamp)
	if err != nil {
		return fmt.Errorf("journal: append event: %w", err)
	}
	return nil
}

// Events returns every event recorded for runID, in Seq order.
func (s *MySQLStore) Events(ctx context.Context, runID string) ([]Event, error) {
	const q = `
		SELECT run_id, seq, node_description, phase, message, timestamp
		FROM journal_events
		WHERE run_id = ?
		ORDER BY seq ASC
	`
	rows, err := s.db.QueryContext(ctx, q, runID)
	if err != nil {
		return nil, fmt.Errorf("journal: query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.RunID, &e.Seq, &e.NodeDescription, &e.Phase, &e.Message, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("journal: scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: iterate events: %w", err)
	}
	return events, nil
}

// Close releases the underlying database connection.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
