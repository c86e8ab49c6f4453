// Package cli provides the interactive postboard command-line client.
//
// It wires configuration, the local session database, the API client and
// an interactive REPL. On start the stored session (if any) is revalidated
// with the server; a rejected or unverifiable session is discarded.
//
// Commands:
//   - register / login / logout / whoami
//   - feed, post, edit <id>, delete <id>, like <id>
//   - image <id> [file]: upload a picture for your post, or print its URL
//   - ping, help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the dispatch rules.
package cli
