// Package notify provides cross-platform desktop notifications for phase
// completions, using osascript on macOS and notify-send on Linux.
package notify

// Notifier sends desktop notifications.
type Notifier interface {
	// Send sends a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound sends a notification with sound.
	SendWithSound(title, message string) error

	// IsSupported reports whether notifications work on this platform.
	IsSupported() bool
}

type noopNotifier struct{}

func (noopNotifier) Send(title, message string) error          { return nil }
func (noopNotifier) SendWithSound(title, message string) error { return nil }
func (noopNotifier) IsSupported() bool                         { return false }

// New creates a platform-specific notifier, falling back to a no-op
// notifier where nothing is available.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}
