// Package metadata is a small key/value table in the CLI's SQLite file.
// The session manager mirrors the current login there.
package metadata

import "context"

// Repository stores string values by key. Get reports a missing key with
// ok == false rather than an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
}
