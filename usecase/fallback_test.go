package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andriga/assistant-api/domain"
)

func TestFallbackResponseDeterministic(t *testing.T) {
	inputs := []string{
		"I need a heart specialist",
		"how much does it cost",
		"hello there",
	}
	for _, in := range inputs {
		first := FallbackResponse(in)
		second := FallbackResponse(in)
		assert.Equal(t, first, second, "input %q", in)
		assert.NotEmpty(t, first)
	}
}

func TestFallbackResponseCaseInsensitive(t *testing.T) {
	reference := FallbackResponse("heart")
	for _, in := range []string{"HEART", "Heart", "my HeArT hurts"} {
		assert.Equal(t, reference, FallbackResponse(in), "input %q", in)
	}
	assert.Contains(t, reference, "Dr. Sarah Smith")
}

// Rule order determines behavior on ambiguous input, so it is pinned
// here: specialty groups first, then booking, roster, fees.
func TestFallbackRuleOrder(t *testing.T) {
	require.Len(t, fallbackRules, 6)
	leads := make([]string, len(fallbackRules))
	for i, rule := range fallbackRules {
		require.NotEmpty(t, rule.keywords)
		leads[i] = rule.keywords[0]
	}
	assert.Equal(t, []string{"cardiologist", "neurologist", "pediatrician", "book", "doctor", "fee"}, leads)
}

func TestFallbackKeywordPrecedence(t *testing.T) {
	// Contains both "heart" and "appointment"; the cardiology rule is
	// checked before the booking rule, so it must win.
	got := FallbackResponse("book an appointment with a heart doctor")
	assert.Contains(t, got, "Dr. Sarah Smith")
	assert.NotContains(t, got, "I'd be happy to help you book an appointment")
}

func TestFallbackCardiology(t *testing.T) {
	got := FallbackResponse("I need a heart specialist")
	assert.Contains(t, got, "Dr. Sarah Smith")
	assert.Contains(t, got, "Monday, Wednesday, Friday")
	assert.Contains(t, got, "$150")
}

func TestFallbackNeurology(t *testing.T) {
	got := FallbackResponse("something wrong with my brain")
	assert.Contains(t, got, "Dr. James Johnson")
	assert.Contains(t, got, "Tuesday, Thursday")
	assert.Contains(t, got, "$175")
}

func TestFallbackPediatrics(t *testing.T) {
	got := FallbackResponse("my kid has a fever")
	assert.Contains(t, got, "Dr. Emily Chen")
	assert.Contains(t, got, "$120")
}

func TestFallbackBooking(t *testing.T) {
	got := FallbackResponse("I want to schedule a visit")
	assert.Contains(t, got, "Which doctor")
	for _, d := range domain.Roster() {
		assert.Contains(t, got, d.Name())
	}
}

func TestFallbackRosterListing(t *testing.T) {
	got := FallbackResponse("which doctors are available")
	assert.Contains(t, got, "1. **Dr. Sarah Smith** - Cardiologist (Mon, Wed, Fri)")
	assert.Contains(t, got, "5. **Dr. Lisa Davis** - Dermatologist (Mon, Fri)")
}

func TestFallbackFees(t *testing.T) {
	got := FallbackResponse("what is the price")
	assert.Contains(t, got, "**Cardiology** (Dr. Smith): $150")
	assert.Contains(t, got, "**Orthopedics** (Dr. Brown): $200")
}

func TestFallbackGeneric(t *testing.T) {
	got := FallbackResponse("hello")
	assert.Contains(t, got, "Could you please provide more details")
}

// The fallback answers and the default context document must agree on
// every doctor fact since both render from the same roster.
func TestFallbackAgreesWithContextDocument(t *testing.T) {
	doc := domain.ContextDocument()
	for _, d := range domain.Roster() {
		assert.Contains(t, doc, d.Name())
		assert.Contains(t, doc, d.DayList())
		assert.Contains(t, doc, d.SlotList())
		assert.True(t, strings.Contains(doc, d.Specialty))
	}

	cardio := FallbackResponse("heart")
	assert.Contains(t, doc, "Monday, Wednesday, Friday")
	assert.Contains(t, cardio, "Monday, Wednesday, Friday")
	assert.Contains(t, doc, "$150")
	assert.Contains(t, cardio, "$150")
}
