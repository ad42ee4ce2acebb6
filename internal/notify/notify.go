// Package notify provides desktop notification support for tfprofile.
package notify

import (
	"fmt"

	"tfprofile/internal/config"
)

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// NotifySwitch sends a notification about a successful profile switch.
	NotifySwitch(profile string) error
	// NotifyImport sends a notification about a successful profile import.
	NotifyImport(profile string) error
	// NotifyRefusal sends an alert when an operation was refused to keep
	// existing credentials safe.
	NotifyRefusal(reason error) error
}

// Option configures a Notifier.
type Option func(*notifier)

// WithBackend sets a custom notification backend (for testing).
func WithBackend(backend Backend) Option {
	return func(n *notifier) {
		n.backend = backend
	}
}

// notifier sends desktop notifications using the system notification service.
type notifier struct {
	onSwitch  bool
	onImport  bool
	onRefusal bool
	backend   Backend
}

// NotifySwitch sends a notification about a successful profile switch.
func (n *notifier) NotifySwitch(profile string) error {
	if !n.onSwitch {
		return nil
	}

	title := "tfprofile: Profile Switched"
	message := fmt.Sprintf("Terraform Cloud credentials now point at '%s'.", profile)

	return n.backend.Notify(title, message, "")
}

// NotifyImport sends a notification about a successful profile import.
func (n *notifier) NotifyImport(profile string) error {
	if !n.onImport {
		return nil
	}

	title := "tfprofile: Profile Imported"
	message := fmt.Sprintf("Credentials registered as profile '%s'.", profile)

	return n.backend.Notify(title, message, "")
}

// NotifyRefusal sends an alert when an operation was refused.
func (n *notifier) NotifyRefusal(reason error) error {
	if !n.onRefusal {
		return nil
	}

	title := "tfprofile: Operation Refused"

	return n.backend.Alert(title, reason.Error(), "")
}

// New creates a new Notifier based on the configuration.
func New(cfg config.NotificationConfig, opts ...Option) Notifier {
	n := &notifier{
		onSwitch:  cfg.Enabled && cfg.OnSwitch,
		onImport:  cfg.Enabled && cfg.OnImport,
		onRefusal: cfg.Enabled && cfg.OnRefusal,
		backend:   newDesktopBackend(),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}
