package forms

import (
	"strings"
	"sync"

	"github.com/pagelight/pagelight/internal/audit"
	"github.com/pagelight/pagelight/internal/config"
)

// Level classifies a flash message for presentation.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Flash is the user-facing outcome of a form submission, worded the way
// the production site words it.
type Flash struct {
	Level   Level
	Message string
}

const (
	msgConsentRequired   = "Consent is required to subscribe."
	msgInvalidEmail      = "Please enter a valid email address."
	msgAlreadySubscribed = "This email is already subscribed."
	msgSubscribed        = "Thank you for subscribing. You're on the list."
)

// Form handles subscribe submissions for one kiosk session. Addresses are
// remembered in memory only; nothing is stored or sent anywhere.
type Form struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	auditor *audit.Buffer
}

// NewForm creates a session-scoped subscribe form. A nil audit buffer
// disables activity recording.
func NewForm(auditor *audit.Buffer) *Form {
	return &Form{
		seen:    make(map[string]struct{}),
		auditor: auditor,
	}
}

// Submit runs the subscribe checks in the production order: consent first,
// then address syntax, then duplicates. The address is normalized to
// trimmed lower case before any check.
func (f *Form) Submit(email string, consent bool) Flash {
	address := strings.ToLower(strings.TrimSpace(email))
	f.record(audit.EventSubscribeAttempt, address, "")

	if !consent {
		f.record(audit.EventSubscribeRejected, address, "consent_missing")
		return Flash{Level: LevelError, Message: msgConsentRequired}
	}

	if err := config.GetValidator().Var(address, "required,site_email"); err != nil {
		f.record(audit.EventSubscribeRejected, address, "invalid_email")
		return Flash{Level: LevelError, Message: msgInvalidEmail}
	}

	f.mu.Lock()
	_, duplicate := f.seen[address]
	if !duplicate {
		f.seen[address] = struct{}{}
	}
	f.mu.Unlock()

	if duplicate {
		f.record(audit.EventSubscribeRejected, address, "duplicate_subscription")
		return Flash{Level: LevelInfo, Message: msgAlreadySubscribed}
	}

	f.record(audit.EventSubscribeOK, address, "")
	return Flash{Level: LevelSuccess, Message: msgSubscribed}
}

func (f *Form) record(event audit.Event, address, reason string) {
	fields := map[string]any{"email": address}
	if reason != "" {
		fields["reason"] = reason
	}
	f.auditor.Record(event, fields)
}
