// Package gmail fetches unread messages from the authenticated mailbox.
//
// The client lists messages matching a search query (by default the unread
// Primary category), retrieves each one in full, and decodes headers and
// body into the Email type consumed by the scoring stage. Messages that
// cannot be decoded are skipped; authentication and quota errors abort the
// run.
package gmail
