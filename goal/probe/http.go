package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/edgeagent/seekgraph/goal"
)

// HTTPReachable builds a State that reports the status code of a GET
// request to url, treating a transport-level failure (DNS, connection
// refused, timeout) as StateNotFound: on an edge device a flaky or
// unreachable network is an absence of evidence, not a fatal condition.
func HTTPReachable(url string, client *http.Client) goal.State[any, int] {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return func(ctx context.Context, _ any) (int, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return 0, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return 0, goal.NewStateNotFound("unreachable: "+url, err)
		}
		defer func() { _ = resp.Body.Close() }()
		return resp.StatusCode, nil
	}
}

// StatusOK builds a Test that accepts any 2xx status code.
func StatusOK() goal.Test[any, int] {
	return func(_ context.Context, _ any, status int) bool {
		return status >= 200 && status < 300
	}
}

// HTTPReachableGoal is the convenience Goal for an endpoint health probe:
// no remediation action, since an agent cannot make a remote service
// reachable by itself — only a Testable goal, typically composed as a
// pre-condition for an action elsewhere in the graph.
func HTTPReachableGoal(url string, client *http.Client) *goal.Goal[any] {
	return goal.Testable(HTTPReachable(url, client), StatusOK()).
		Description(func(_ any) string { return url + " reachable" })
}
