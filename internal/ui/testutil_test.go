package ui

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"pomo/internal/config"
	"pomo/internal/notify"
	"pomo/internal/storage"
)

// setupTest disables colors so rendered output is stable across
// environments.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// fakeClock is a manually advanced engine clock.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}
}

func createTestGateway(t *testing.T) *storage.Gateway {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	g, warnings := storage.NewGateway(store)
	if len(warnings) != 0 {
		t.Fatalf("unexpected load warnings: %v", warnings)
	}
	return g
}

func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// recordingNotifier captures notifications instead of sending them.
type recordingNotifier struct {
	sent []string
}

func (n *recordingNotifier) Send(title, message string) error {
	n.sent = append(n.sent, title)
	return nil
}

func (n *recordingNotifier) SendWithSound(title, message string) error {
	n.sent = append(n.sent, title+" (sound)")
	return nil
}

func (n *recordingNotifier) IsSupported() bool { return true }

var _ notify.Notifier = (*recordingNotifier)(nil)

// createTestApp builds an app over a fake clock and silent logger.
func createTestApp(t *testing.T) (*App, *fakeClock) {
	t.Helper()
	setupTest(t)

	gateway := createTestGateway(t)
	clock := newFakeClock()
	engine := NewEngine(clock, gateway.Settings())
	logger := log.New(io.Discard)

	app := NewApp(gateway, engine, &recordingNotifier{}, logger, createTestStyles(), nil)
	app.width = 80
	app.height = 30
	return app, clock
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
