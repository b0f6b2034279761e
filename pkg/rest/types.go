package rest

import (
	"context"
)

// Client defines the operations the console uses to talk to the fleet API.
// Every path is relative to the configured base URL and may carry a query string.
//
// Each call is a single attempt: there are no retries. Cancelling ctx aborts the
// request in flight, which is how callers discard work for a page that went away.
type Client interface {
	// Get issues GET path and decodes the JSON response into out.
	Get(ctx context.Context, path string, out any) error

	// Post issues POST path with body encoded as JSON and decodes the response into out.
	Post(ctx context.Context, path string, body, out any) error

	// Put issues PUT path with body encoded as JSON and decodes the response into out.
	Put(ctx context.Context, path string, body, out any) error

	// Delete issues DELETE path. A 404 means the entity is already gone and is not an error.
	Delete(ctx context.Context, path string) error
}
