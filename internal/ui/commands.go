// This file contains tea.Cmd factories for work that should not block
// the update loop, currently just desktop notifications.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pomo/internal/notify"
)

// notifyCmd sends a desktop notification off the update loop.
func notifyCmd(n notify.Notifier, title, message string, sound bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if sound {
			err = n.SendWithSound(title, message)
		} else {
			err = n.Send(title, message)
		}
		return notifySentMsg{err: err}
	}
}
