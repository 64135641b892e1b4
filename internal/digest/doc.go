// Package digest turns scored emails into the Slack message.
//
// Emails are ordered by descending priority with a stable sort, so equal
// priorities keep their mailbox order, and rendered as mrkdwn with one
// entry per email linking back to the message in Gmail. A day with no
// unread mail still produces a digest.
package digest
