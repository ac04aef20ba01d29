/*
Package session manages preview sessions: the resumable dev-time state a
preview client reconnects to.

The manager serializes concurrent access to each session, combining an
in-process per-session mutex with an optional distributed lock so multiple
dev-server replicas can share one snapshot store safely.
*/
package session
