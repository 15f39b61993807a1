package domain

import (
	"fmt"
	"strings"
)

// Doctor is one entry of the hospital roster. The roster is the single
// source of truth for both the default context document handed to the
// model and the canned fallback answers, so the two cannot drift apart.
type Doctor struct {
	FirstName string
	Surname   string
	Specialty string
	Field     string
	Focus     string
	Days      []string
	Slots     []string
	Fee       int
}

// Name returns the doctor's display name, e.g. "Dr. Sarah Smith".
func (d Doctor) Name() string {
	return fmt.Sprintf("Dr. %s %s", d.FirstName, d.Surname)
}

// ShortName returns the surname form used in conversation, e.g. "Dr. Smith".
func (d Doctor) ShortName() string {
	return "Dr. " + d.Surname
}

// DayList joins available days with commas, e.g. "Monday, Wednesday, Friday".
func (d Doctor) DayList() string {
	return strings.Join(d.Days, ", ")
}

// ShortDayList abbreviates days to three letters, e.g. "Mon, Wed, Fri".
func (d Doctor) ShortDayList() string {
	short := make([]string, len(d.Days))
	for i, day := range d.Days {
		short[i] = day[:3]
	}
	return strings.Join(short, ", ")
}

// SlotList joins time slots with commas.
func (d Doctor) SlotList() string {
	return strings.Join(d.Slots, ", ")
}

var roster = []Doctor{
	{
		FirstName: "Sarah",
		Surname:   "Smith",
		Specialty: "Cardiologist",
		Field:     "Cardiology",
		Focus:     "Heart health, cardiovascular diseases",
		Days:      []string{"Monday", "Wednesday", "Friday"},
		Slots:     []string{"9:00 AM", "10:00 AM", "2:00 PM", "4:00 PM"},
		Fee:       150,
	},
	{
		FirstName: "James",
		Surname:   "Johnson",
		Specialty: "Neurologist",
		Field:     "Neurology",
		Focus:     "Brain and nervous system disorders",
		Days:      []string{"Tuesday", "Thursday"},
		Slots:     []string{"10:00 AM", "11:00 AM", "3:00 PM"},
		Fee:       175,
	},
	{
		FirstName: "Emily",
		Surname:   "Chen",
		Specialty: "Pediatrician",
		Field:     "Pediatrics",
		Focus:     "Child healthcare, vaccinations",
		Days:      []string{"Monday", "Tuesday", "Wednesday"},
		Slots:     []string{"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM"},
		Fee:       120,
	},
	{
		FirstName: "Michael",
		Surname:   "Brown",
		Specialty: "Orthopedic Surgeon",
		Field:     "Orthopedics",
		Focus:     "Bone and joint issues, sports injuries",
		Days:      []string{"Wednesday", "Thursday", "Friday"},
		Slots:     []string{"10:00 AM", "1:00 PM", "4:00 PM"},
		Fee:       200,
	},
	{
		FirstName: "Lisa",
		Surname:   "Davis",
		Specialty: "Dermatologist",
		Field:     "Dermatology",
		Focus:     "Skin conditions, cosmetic dermatology",
		Days:      []string{"Monday", "Friday"},
		Slots:     []string{"9:00 AM", "12:00 PM", "3:00 PM"},
		Fee:       130,
	},
}

// Roster returns the fixed doctor roster.
func Roster() []Doctor {
	out := make([]Doctor, len(roster))
	copy(out, roster)
	return out
}

// DoctorBySpecialty finds a roster entry by specialty name.
func DoctorBySpecialty(specialty string) (Doctor, bool) {
	for _, d := range roster {
		if d.Specialty == specialty {
			return d, true
		}
	}
	return Doctor{}, false
}

// ContextDocument renders the default grounding document for the demo:
// the hospital roster plus services and booking policy, as markdown.
func ContextDocument() string {
	var b strings.Builder
	b.WriteString("# City Health Medical Center\n\n## Available Doctors\n")
	for _, d := range roster {
		fmt.Fprintf(&b, "\n### %s - %s\n", d.Name(), d.Specialty)
		fmt.Fprintf(&b, "- **Specialization:** %s\n", d.Focus)
		fmt.Fprintf(&b, "- **Available Days:** %s\n", d.DayList())
		fmt.Fprintf(&b, "- **Available Slots:** %s\n", d.SlotList())
		fmt.Fprintf(&b, "- **Consultation Fee:** $%d\n", d.Fee)
	}
	b.WriteString(`
## Hospital Services
- Emergency Care (24/7)
- Consultation Booking
- Follow-up Appointments
- Lab Tests & Diagnostics
- Pharmacy Services

## Booking Policy
- Appointments can be booked up to 2 weeks in advance
- Cancellations must be made 24 hours before the appointment
- New patients need to arrive 15 minutes early for registration
`)
	return b.String()
}

// Greeting is the assistant's canned opening message for the demo widget.
func Greeting() string {
	return "Hello! I'm your AI assistant for City Health Medical Center. I can help you with:\n\n" +
		"• Finding a doctor based on your needs\n" +
		"• Checking doctor availability\n" +
		"• Booking appointments\n" +
		"• Information about our services\n\n" +
		"How can I assist you today?"
}
