// ABOUTME: Transient banners and the confirmation modal
// ABOUTME: Single message with timed expiry; data-only pending modal action
package notify

import "time"

type Severity int

const (
	Success Severity = iota
	Error
)

// Lifetime is how long a banner stays up before it clears itself.
const Lifetime = 5 * time.Second

// Banner is the single current message. Showing a new one discards the
// old immediately and restarts the clock; Gen ties each expiry timer to
// the message that started it so a stale timer cannot clear a newer
// message.
type Banner struct {
	Message   string
	Severity  Severity
	Gen       int
	ExpiresAt time.Time
}

func (b Banner) Active() bool {
	return b.Message != ""
}

// Show replaces the banner and advances the generation.
func (b Banner) Show(message string, severity Severity, now time.Time) Banner {
	return Banner{
		Message:   message,
		Severity:  severity,
		Gen:       b.Gen + 1,
		ExpiresAt: now.Add(Lifetime),
	}
}

// Expire clears the banner only when the firing timer belongs to the
// currently shown message.
func (b Banner) Expire(gen int) Banner {
	if gen != b.Gen {
		return b
	}
	return Banner{Gen: b.Gen}
}

// Action names the confirmable operation a modal is gating. The modal
// carries data only; the caller resolves the action when the user
// confirms.
type Action int

const (
	ActionNone Action = iota
	ActionDeleteVendor
	ActionDeleteProduct
	ActionDeleteRepresentative
)

// Modal is the single active dialog. The zero value is closed. Only one
// modal may be up; requesting another replaces the first. Replacement is
// the accepted behavior, there is no queue.
type Modal struct {
	Message  string
	Confirm  bool
	Action   Action
	TargetID string
}

func (m Modal) Open() bool {
	return m.Message != ""
}

// Info is a single-acknowledgement dialog with nothing to resolve.
func Info(message string) Modal {
	return Modal{Message: message}
}

// ConfirmAction is a confirm/cancel dialog gating a destructive (or
// otherwise deliberate) action on a target record.
func ConfirmAction(action Action, targetID, message string) Modal {
	return Modal{Message: message, Confirm: true, Action: action, TargetID: targetID}
}
