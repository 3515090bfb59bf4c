// Package api is the shared HTTP gateway to the news-verification backend.
//
// # Overview
//
// The package provides:
//  1. A single Client configured with a base URL and JSON content type,
//     exposing typed operations per resource: auth, news/verification,
//     feedback, and admin.
//  2. A request interceptor that reads the current access token from the
//     persisted store and attaches it as a bearer credential when present.
//  3. A response interceptor implementing the refresh protocol: on a 401
//     that has not been retried yet, issue one refresh call, persist the new
//     access token, and resend the original request exactly once. A failed
//     refresh clears the stored pair and fires the session-expired handler,
//     then propagates the original failure.
//
// # Error Handling
//
// Failures surface as *Error carrying the HTTP status and the server's
// message. Error unwraps onto sentinel errors (ErrUnauthenticated,
// ErrValidation, ErrForbidden, ErrNotFound, ErrConflict); transport failures
// wrap ErrUnavailable. Match with errors.Is, extract with errors.As.
//
// Concurrency & Contexts
//
// Client is safe for concurrent use. Concurrent 401s coalesce into a single
// in-flight refresh call; the at-most-one-resend rule still holds per
// logical request because the retry flag lives on the call frame.
package api
