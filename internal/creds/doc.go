// Package creds defines the contract with the external account-credential
// provider. The OAuth handshake itself happens elsewhere (system account
// settings, a login helper, a test fixture); this package only models the
// read side: "is a login present" and "what are the current credentials".
//
// TokenSourceProvider adapts any oauth2.TokenSource, so refresh-capable
// sources keep working: every Credentials call re-reads the source and the
// freshest token wins.
package creds
