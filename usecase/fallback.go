package usecase

import (
	"fmt"
	"strings"

	"github.com/andriga/assistant-api/domain"
)

// fallbackRule pairs a keyword group with an answer. Rules are evaluated
// in order and the first match wins, so specialty keywords take
// precedence over the generic booking keywords on ambiguous input like
// "book an appointment with a heart doctor".
type fallbackRule struct {
	keywords []string
	answer   func() string
}

var fallbackRules = []fallbackRule{
	{
		keywords: []string{"cardiologist", "heart", "cardiac"},
		answer:   func() string { return specialtyAnswer("Cardiologist") },
	},
	{
		keywords: []string{"neurologist", "brain", "nerve"},
		answer:   func() string { return specialtyAnswer("Neurologist") },
	},
	{
		keywords: []string{"pediatrician", "child", "kid"},
		answer:   func() string { return specialtyAnswer("Pediatrician") },
	},
	{
		keywords: []string{"book", "appointment", "schedule"},
		answer:   bookingAnswer,
	},
	{
		keywords: []string{"doctor", "available", "list"},
		answer:   rosterAnswer,
	},
	{
		keywords: []string{"fee", "cost", "price"},
		answer:   feeAnswer,
	},
}

// FallbackResponse is the deterministic keyword-triggered answer used
// when the live model path is unconfigured or fails. Matching is
// case-insensitive; unmatched input gets the generic capability answer.
func FallbackResponse(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.answer()
			}
		}
	}
	return genericAnswer()
}

func availabilityBlock(d domain.Doctor) string {
	return fmt.Sprintf("**Availability:**\n• %s\n• Time slots: %s\n• Consultation fee: $%d",
		d.DayList(), d.SlotList(), d.Fee)
}

func specialtyAnswer(specialty string) string {
	d, ok := domain.DoctorBySpecialty(specialty)
	if !ok {
		return genericAnswer()
	}
	switch specialty {
	case "Neurologist":
		return fmt.Sprintf("For neurological concerns, we have **%s**, our expert neurologist.\n\n%s\n\nWould you like to schedule an appointment?",
			d.Name(), availabilityBlock(d))
	case "Pediatrician":
		return fmt.Sprintf("For children's healthcare, **%s** is our pediatrician.\n\n%s\n\nShe specializes in %s. Would you like to book an appointment?",
			d.Name(), availabilityBlock(d), strings.ToLower(d.Focus))
	default:
		return fmt.Sprintf("Based on our records, **%s** is our %s specializing in %s.\n\n%s\n\nWould you like me to help you book an appointment with %s?",
			d.Name(), strings.ToLower(d.Specialty), strings.ToLower(d.Focus), availabilityBlock(d), d.ShortName())
	}
}

func bookingAnswer() string {
	var b strings.Builder
	b.WriteString("I'd be happy to help you book an appointment! To proceed, please let me know:\n\n")
	b.WriteString("1. **Which doctor** would you like to see?\n")
	b.WriteString("2. **Preferred day** (check doctor's availability)\n")
	b.WriteString("3. **Preferred time slot**\n\n")
	b.WriteString("Our available specialists are:\n")
	for _, d := range domain.Roster() {
		fmt.Fprintf(&b, "• %s (%s)\n", d.Name(), d.Specialty)
	}
	return strings.TrimRight(b.String(), "\n")
}

func rosterAnswer() string {
	var b strings.Builder
	b.WriteString("Here are all our available doctors:\n\n")
	for i, d := range domain.Roster() {
		fmt.Fprintf(&b, "%d. **%s** - %s (%s)\n", i+1, d.Name(), d.Specialty, d.ShortDayList())
	}
	b.WriteString("\nWhich specialist are you interested in?")
	return b.String()
}

func feeAnswer() string {
	var b strings.Builder
	b.WriteString("Here are our consultation fees:\n\n")
	for _, d := range domain.Roster() {
		fmt.Fprintf(&b, "• **%s** (%s): $%d\n", d.Field, d.ShortName(), d.Fee)
	}
	b.WriteString("\nWould you like more information about any specific doctor?")
	return b.String()
}

func genericAnswer() string {
	return "I understand you're looking for assistance. I can help with:\n\n" +
		"• Finding the right doctor for your needs\n" +
		"• Checking availability and time slots\n" +
		"• Booking appointments\n" +
		"• Information about consultation fees\n\n" +
		"Could you please provide more details about what you need?"
}
