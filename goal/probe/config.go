package probe

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/edgeagent/seekgraph/goal"
)

// ConfigContents reads path as a string, raising StateNotFound when the
// file does not exist (per scenario S2: "reads file contents as string,
// raising StateNotFound if absent").
func ConfigContents(path string) goal.State[any, string] {
	return func(_ context.Context, _ any) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", goal.NewStateNotFound("config file does not exist: "+path, err)
			}
			return "", err
		}
		return string(data), nil
	}
}

// HasLine builds a Test that reports whether any line of the snapshot
// equals line exactly.
func HasLine(line string) goal.Test[any, string] {
	return func(_ context.Context, _ any, contents string) bool {
		scanner := bufio.NewScanner(strings.NewReader(contents))
		for scanner.Scan() {
			if scanner.Text() == line {
				return true
			}
		}
		return false
	}
}

// EnsureLine builds an Action that rewrites path so it contains line
// exactly once: existing occurrences of line are stripped, then line is
// appended, per scenario S2. Non-matching lines are preserved in order.
func EnsureLine(path, line string) goal.Action[any] {
	return func(_ context.Context, _ any, _ *any) error {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}

		var kept []string
		if err == nil {
			scanner := bufio.NewScanner(strings.NewReader(string(data)))
			for scanner.Scan() {
				if text := scanner.Text(); text != line {
					kept = append(kept, text)
				}
			}
		}
		kept = append(kept, line)

		return os.WriteFile(path, []byte(strings.Join(kept, "\n")+"\n"), 0o644)
	}
}

// ConfigLineGoal is the convenience Goal for scenario S2: ensure path
// exists (S1's FileExistsGoal, mapped in as the pre-condition) and contains
// line exactly once.
func ConfigLineGoal(path, line string) *goal.Goal[any] {
	precondition := FileExistsGoal(path)
	return goal.Actionable(ConfigContents(path), HasLine(line), EnsureLine(path, line), precondition).
		Description(func(_ any) string { return path + " has line " + line })
}
