// Package notifications pushes archive events to an ntfy topic when one is
// configured, and degrades to a noop service otherwise. Notification failures
// are advisory; callers log and move on.
package notifications
