// Package client contains the client-side plumbing for the onboarding API.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface): sign-in/sign-up, the
//     authoritative user profile, onboarding state and step submission,
//     the admin configuration and step count, and the user listing.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that injects the
//     bearer token, stamps every request with an X-Request-ID, bounds each
//     call with a timeout and maps failures to the errors below.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite database and applies the embedded goose migrations.
//
// # Error Handling
//
// Transport failures and timeouts wrap ErrUnavailable. Non-2xx responses are
// returned as *APIError carrying the server's free-text message; 401 and 403
// also match ErrUnauthorized with errors.Is. Message turns any of these into
// the single string shown to the user.
//
// # Concurrency
//
// HTTPClient holds no per-user state and is safe for concurrent use.
package client
