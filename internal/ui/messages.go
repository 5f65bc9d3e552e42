package ui

// Internal messages passed between panes and the app coordinator.

// taskPickedMsg is emitted when the user focuses a task for the timer.
type taskPickedMsg struct {
	id   string
	name string
}

// taskDeletedMsg is emitted after a task is removed so the app can
// detach it from the running timer.
type taskDeletedMsg struct {
	id string
}

// durationSetMsg reports the outcome of a custom duration entry.
type durationSetMsg struct {
	err error
}

// notifySentMsg reports the outcome of a desktop notification.
type notifySentMsg struct {
	err error
}
