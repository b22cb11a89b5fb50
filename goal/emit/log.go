package emit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// StdLogger implements Emitter by writing one line per event to an
// io.Writer, rendering one line per traced phase in text mode
// ("<description>: checking…", "<description>: ready!", ...), or one
// structured JSON object per line in JSON mode.
type StdLogger struct {
	writer   io.Writer
	jsonMode bool
}

// NewStdLogger creates a StdLogger writing to writer. If writer is nil,
// os.Stdout is used. jsonMode selects one JSON object per line instead of
// a plain text line.
func NewStdLogger(writer io.Writer, jsonMode bool) *StdLogger {
	if writer == nil {
		writer = os.Stdout
	}
	return &StdLogger{writer: writer, jsonMode: jsonMode}
}

// Emit writes one line for e.
func (l *StdLogger) Emit(_ context.Context, e Event) {
	if l.jsonMode {
		l.emitJSON(e)
		return
	}
	l.emitText(e)
}

func (l *StdLogger) emitJSON(e Event) {
	data, err := json.Marshal(struct {
		RunID       string `json:"run_id,omitempty"`
		Description string `json:"description"`
		Phase       Phase  `json:"phase"`
	}{
		RunID:       e.RunID,
		Description: e.Description,
		Phase:       e.Phase,
	})
	if err != nil {
		_, _ = fmt.Fprintf(l.writer, "{\"error\":%q}\n", err.Error())
		return
	}
	_, _ = fmt.Fprintf(l.writer, "%s\n", data)
}

func (l *StdLogger) emitText(e Event) {
	_, _ = fmt.Fprintln(l.writer, e.Message())
}
