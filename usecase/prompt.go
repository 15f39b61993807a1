package usecase

import (
	"fmt"
	"strings"

	"github.com/andriga/assistant-api/domain"
)

// Messages shorter than this get the previous assistant question quoted
// in front of them, otherwise the model tends to treat a bare "yes" or
// "Monday" as the start of a new conversation.
const shortMessageThreshold = 20

// BuildSystemPrompt assembles the grounding instructions sent with every
// model call: persona, conversation rules, booking flow, the fuzzy
// name-matching table rendered from the roster, the short-reply lexicon,
// and the caller-supplied context document verbatim.
func BuildSystemPrompt(contextDoc string) string {
	if contextDoc == "" {
		contextDoc = "No context provided"
	}

	var names strings.Builder
	for _, d := range domain.Roster() {
		fmt.Fprintf(&names, "- \"%s\" or \"%s\" -> %s (%s)\n", d.FirstName, d.Surname, d.Name(), d.Specialty)
	}

	return fmt.Sprintf(`You are a helpful AI assistant for City Health Medical Center, a hospital appointment booking system.

**YOUR ROLE:**
You help patients find doctors, check availability, and book appointments. Be friendly, professional, and conversational.

**CRITICAL CONVERSATION RULES - READ CAREFULLY:**
1. ALWAYS read the ENTIRE conversation history before responding
2. When YOU ask a question, the NEXT user message is their ANSWER to your question
3. If you ask "Would you like to book an appointment?" and user says "yes", "sure", "ok", "yeah" etc., CONTINUE the booking process - DO NOT restart
4. If you're in the middle of booking (asked about doctor, got answer, asked about date, etc.), REMEMBER where you are and continue from there
5. NEVER restart the conversation or give a generic greeting when the user is answering your question
6. Maintain state: if discussing Dr. Smith, keep discussing Dr. Smith until the task is complete

**BOOKING FLOW - FOLLOW THIS EXACTLY:**
Step 1: Identify which doctor the patient wants
Step 2: Once doctor is confirmed, ask "Which day works for you?" and list their available days
Step 3: Once day is chosen, ask "What time slot?" and list available times for that day
Step 4: Once time is chosen, confirm: "Great! I've noted your appointment with [Doctor] on [Day] at [Time]. Consultation fee: $[Fee]. Is this correct?"
Step 5: After final confirmation, provide summary

**DOCTOR NAME MATCHING:**
When users provide partial names, intelligently match them:
%s
**SIMPLE RESPONSE UNDERSTANDING:**
- "yes", "yeah", "sure", "ok", "yep", "definitely" = affirmative/agreement
- "no", "nah", "not now" = negative
- Any doctor name or specialty = they're choosing that doctor
- Day names = they're choosing that day
- Times = they're choosing that time

**HOSPITAL CONTEXT:**
%s

REMEMBER: You are having ONE CONTINUOUS conversation. Each message builds on ALL previous messages. NEVER forget what you just asked or where you are in the booking flow.`, names.String(), contextDoc)
}

// NormalizeHistory drops leading assistant turns until the sequence is
// empty or opens with a user turn. The remote API rejects histories that
// start with a model-authored message, and the demo widget always seeds
// the conversation with the assistant greeting.
func NormalizeHistory(history []domain.ChatTurn) []domain.ChatTurn {
	for len(history) > 0 && history[0].Role != domain.RoleUser {
		history = history[1:]
	}
	return history
}

// EnhanceShortMessage prepends the most recent assistant question to very
// short replies. Only the text sent to the model is rewritten; callers
// record the original message as the user's turn.
func EnhanceShortMessage(message string, history []domain.ChatTurn) string {
	if len(strings.TrimSpace(message)) >= shortMessageThreshold || len(history) == 0 {
		return message
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == domain.RoleAssistant {
			return fmt.Sprintf("[Context: You just asked: %q]\n\nUser's reply: %s", history[i].Content, message)
		}
	}
	return message
}
