// Package slack delivers the digest to a Slack incoming webhook.
//
// The client makes exactly one POST per digest and treats any non-2xx
// response as a failure of the whole run. There is no retry: a duplicated
// digest is more confusing than a missing one, and the next scheduled run
// covers the gap.
package slack
