package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andriga/assistant-api/domain"
)

func turns(pairs ...string) []domain.ChatTurn {
	out := make([]domain.ChatTurn, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.ChatTurn{Role: domain.Role(pairs[i]), Content: pairs[i+1]})
	}
	return out
}

func TestNormalizeHistoryTrimsLeadingAssistantTurns(t *testing.T) {
	history := turns(
		"assistant", "Hello! How can I help?",
		"assistant", "Anyone there?",
		"user", "I need a doctor",
		"assistant", "Which specialty?",
	)

	got := NormalizeHistory(history)

	require.Len(t, got, 2)
	assert.Equal(t, domain.RoleUser, got[0].Role)
	assert.Equal(t, "I need a doctor", got[0].Content)
	assert.Equal(t, "Which specialty?", got[1].Content)
}

func TestNormalizeHistoryAllAssistantCollapsesToEmpty(t *testing.T) {
	history := turns("assistant", "Hi", "assistant", "Hello again")
	assert.Empty(t, NormalizeHistory(history))
}

func TestNormalizeHistoryEmptyIsValid(t *testing.T) {
	assert.Empty(t, NormalizeHistory(nil))
}

func TestNormalizeHistoryUserFirstUntouched(t *testing.T) {
	history := turns("user", "hi", "assistant", "hello")
	assert.Equal(t, history, NormalizeHistory(history))
}

func TestEnhanceShortMessageInjectsLastAssistantQuestion(t *testing.T) {
	question := "Would you like to book an appointment with Dr. Smith?"
	history := turns(
		"user", "I need a cardiologist",
		"assistant", question,
	)

	got := EnhanceShortMessage("yes", history)

	assert.Contains(t, got, question)
	assert.Contains(t, got, "User's reply: yes")
}

func TestEnhanceShortMessageUsesMostRecentAssistantTurn(t *testing.T) {
	history := turns(
		"assistant", "Which doctor?",
		"user", "Dr. Smith",
		"assistant", "Which day works for you?",
	)

	got := EnhanceShortMessage("Monday", history)

	assert.Contains(t, got, "Which day works for you?")
	assert.NotContains(t, got, "Which doctor?")
}

func TestEnhanceShortMessageThreshold(t *testing.T) {
	history := turns("assistant", "Which day works for you?")

	// 19 characters, below the threshold
	short := strings.Repeat("a", 19)
	assert.Contains(t, EnhanceShortMessage(short, history), "User's reply: "+short)

	// 20 characters, at the threshold: left alone
	long := strings.Repeat("a", 20)
	assert.Equal(t, long, EnhanceShortMessage(long, history))
}

func TestEnhanceShortMessageNoAssistantTurn(t *testing.T) {
	assert.Equal(t, "yes", EnhanceShortMessage("yes", turns("user", "hello")))
	assert.Equal(t, "yes", EnhanceShortMessage("yes", nil))
}

func TestBuildSystemPromptInterpolatesContext(t *testing.T) {
	doc := "## Clinic\nDr. Who is available on Saturdays."
	got := BuildSystemPrompt(doc)

	assert.Contains(t, got, doc)
	assert.Contains(t, got, "City Health Medical Center")
	assert.Contains(t, got, "BOOKING FLOW")
}

func TestBuildSystemPromptEmptyContext(t *testing.T) {
	assert.Contains(t, BuildSystemPrompt(""), "No context provided")
}

func TestBuildSystemPromptNameMatchingFromRoster(t *testing.T) {
	got := BuildSystemPrompt("ctx")
	for _, d := range domain.Roster() {
		assert.Contains(t, got, d.Name()+" ("+d.Specialty+")")
	}
}
