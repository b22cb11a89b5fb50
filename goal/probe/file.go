// Package probe provides ready-made State/Action adapters for the physical
// world: files, config text, and HTTP reachability. Thin adapters over
// os.Stat/os.OpenFile for the local probes, and over net/http for the
// networked one, worked into reusable constructors instead of inline test
// fixtures.
package probe

import (
	"context"
	"os"
	"path/filepath"

	"github.com/edgeagent/seekgraph/goal"
)

// FileExists builds a State that reports whether path exists, per scenario
// S1. A permission error or any failure other than "not found" is
// returned as-is (not StateNotFound), since it is not itself evidence one
// way or the other about the file's existence.
func FileExists(path string) goal.State[any, bool] {
	return func(_ context.Context, _ any) (bool, error) {
		_, err := os.Stat(path)
		if err == nil {
			return true, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
}

// EnsureFile builds an Action that creates path (and any missing parent
// directories) if it does not already exist, per scenario S1.
func EnsureFile(path string) goal.Action[any] {
	return func(_ context.Context, _ any, _ *any) error {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o644)
		if err != nil {
			return err
		}
		return f.Close()
	}
}

// FileExistsGoal is the convenience Goal for scenario S1: create path if it
// is missing, otherwise leave it untouched.
func FileExistsGoal(path string) *goal.Goal[any] {
	return goal.Actionable(FileExists(path), func(_ context.Context, _ any, exists bool) bool {
		return exists
	}, EnsureFile(path), nil).Description(func(_ any) string {
		return path + " exists"
	})
}
