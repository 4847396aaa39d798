// Package cmd implements the command-line interface for gmailscope.
//
// This package provides the following commands:
//   - inbox: List messages matching a search query
//   - read: Show a single message and optionally change its read state
//   - threads: List conversation threads matching a search query
//   - thread: Show all messages of one or more threads
//   - send: Compose and send a plain-text message
//   - trash / untrash: Move messages to the trash and back
//   - labels: List the user-visible labels
//   - version: Display version information
//
// The inbox command is the default command when no subcommand is specified.
package cmd
