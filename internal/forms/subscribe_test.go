package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelight/pagelight/internal/audit"
)

func TestSubmitAcceptsValidAddress(t *testing.T) {
	t.Parallel()

	form := NewForm(nil)
	flash := form.Submit("reader@example.com", true)

	assert.Equal(t, LevelSuccess, flash.Level)
	assert.Equal(t, "Thank you for subscribing. You're on the list.", flash.Message)
}

func TestSubmitRequiresConsentBeforeAnythingElse(t *testing.T) {
	t.Parallel()

	form := NewForm(nil)

	// Even a malformed address reports the consent failure first.
	flash := form.Submit("not-an-address", false)
	assert.Equal(t, LevelError, flash.Level)
	assert.Equal(t, "Consent is required to subscribe.", flash.Message)
}

func TestSubmitRejectsMalformedAddresses(t *testing.T) {
	t.Parallel()

	form := NewForm(nil)
	for _, address := range []string{"", "plain", "missing@tld", "@example.com", "a b@example.com"} {
		flash := form.Submit(address, true)
		assert.Equal(t, LevelError, flash.Level, "address %q", address)
		assert.Equal(t, "Please enter a valid email address.", flash.Message)
	}
}

func TestSubmitFlagsDuplicates(t *testing.T) {
	t.Parallel()

	form := NewForm(nil)
	require.Equal(t, LevelSuccess, form.Submit("reader@example.com", true).Level)

	flash := form.Submit("reader@example.com", true)
	assert.Equal(t, LevelInfo, flash.Level)
	assert.Equal(t, "This email is already subscribed.", flash.Message)
}

func TestSubmitNormalizesBeforeDuplicateCheck(t *testing.T) {
	t.Parallel()

	form := NewForm(nil)
	require.Equal(t, LevelSuccess, form.Submit("  Reader@Example.COM ", true).Level)

	flash := form.Submit("reader@example.com", true)
	assert.Equal(t, LevelInfo, flash.Level)
}

func TestSubmitRecordsAuditTrail(t *testing.T) {
	t.Parallel()

	buffer := audit.NewBuffer(16)
	form := NewForm(buffer)

	form.Submit("reader@example.com", true)
	form.Submit("reader@example.com", false)

	entries := buffer.Recent(4)
	require.Len(t, entries, 4)
	assert.Equal(t, audit.EventSubscribeAttempt, entries[0].Event)
	assert.Equal(t, audit.EventSubscribeOK, entries[1].Event)
	assert.Equal(t, audit.EventSubscribeAttempt, entries[2].Event)
	assert.Equal(t, audit.EventSubscribeRejected, entries[3].Event)
	assert.Equal(t, "consent_missing", entries[3].Fields["reason"])
	assert.Equal(t, "reader@example.com", entries[3].Fields["email"])
}
