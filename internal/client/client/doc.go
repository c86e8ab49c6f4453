// Package client contains the CLI's transport to the postboard API.
//
// # Overview
//
// The package provides:
//  1. The Client interface: register, login, profile, the feed operations,
//     post images and a liveness ping.
//  2. HTTPClient, a JSON-over-HTTP implementation. The bearer token is
//     attached by a RoundTripper installed once at construction; it reads
//     the current token from a TokenSource on every request and leaves a
//     request alone when the caller already set Authorization.
//  3. InitDatabase / RunMigrations for the local SQLite file.
//
// # Error Handling
//
// Response statuses map to the sentinels of internal/common (400 →
// ErrorValidation, 401 → ErrorUnauthorized, 403 → ErrorForbidden, 404 →
// ErrorNotFound, 503 → ErrorUnavailable, other 5xx → ErrorInternal).
// Transport failures are ErrUnavailable. Match them with errors.Is.
package client
