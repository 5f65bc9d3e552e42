//go:build !darwin && !linux

package notify

// newPlatformNotifier returns a no-op notifier on platforms without a
// native notification mechanism.
func newPlatformNotifier() Notifier {
	return noopNotifier{}
}
