// Package google handles the OAuth2 flow for read-only Gmail access.
//
// The client secret is read from a downloaded OAuth client JSON file and
// the user token is cached on disk. The first run requires a one-time
// interactive consent (the auth command); subsequent runs refresh the
// token silently through the cached refresh token.
package google
