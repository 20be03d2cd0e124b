// Package download drives one remote extraction task from submission to a
// retrieved file. Manager owns the task state machine, Poller watches the
// active task on the remote service, and side effects (history, notification,
// file retrieval) are delegated to small interfaces.
package download
