// Package cli provides the interactive useradmin command-line client.
//
// It wires configuration, the session manager, the remote API client, and
// the query store into an interactive REPL. Typical flow: prompt for
// credentials, start the background stats poller, and execute user commands.
//
// Key features:
//   - Login / Logout (bearer-token session, persisted across runs)
//   - List / filter / get users, create, update, delete
//   - Activate / deactivate users
//   - Dashboard with status distribution, age histogram, recent signups
//   - API-token generation (own token, or any user's via the admin endpoint)
//   - Backend health report
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// A 401 from any request (including background stats refreshes) drops the
// session and returns the REPL to the logged-out prompt.
package cli
