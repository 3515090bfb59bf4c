// Package cli provides the interactive NewsCheck command-line client.
//
// It wires configuration, local storage, the API gateway, the session
// manager, and an interactive REPL. Typical flow: restore the persisted
// session, start the background notification listener, and execute user
// commands until exit.
//
// Key features:
//   - Register / Login / Logout / profile updates
//   - Verify news content or URLs
//   - Browse verification history (with an offline fallback)
//   - Submit, edit and delete feedback on verification results
//   - Administrator commands: user management, analytics, blocked addresses
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
