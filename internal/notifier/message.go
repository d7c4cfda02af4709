package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/types"
)

const messageDivider = "━━━━━━━━━━━━━━━━━━━━"

// MessageBuilder renders accepted submissions into the HTML notification
// text sent to the chat channel. Field values are already escaped by the
// validator, so they embed safely between the HTML tags added here.
type MessageBuilder struct {
	// Footer identifies the institution at the bottom of every message.
	Footer string

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// DefaultFooter is the institution block shown under every notification.
const DefaultFooter = "🏛️ Badji Mokhtar University\nFaculty of Technology - Computer Science\nMaster in Network & Cybersecurity"

// NewMessageBuilder creates a builder with the default footer.
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{Footer: DefaultFooter, Clock: time.Now}
}

// Build renders the notification for one accepted record.
func (b *MessageBuilder) Build(rec types.Record) string {
	clock := b.Clock
	if clock == nil {
		clock = time.Now
	}
	ts := rec.ReceivedAt
	if ts.IsZero() {
		ts = clock()
	}

	email := rec.Submission.Email
	if email == "" {
		email = "Not provided"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎓 <b>NEW STUDENT RECLAMATION</b>\n\n")
	fmt.Fprintf(&sb, "👤 <b>Student:</b> %s\n", rec.Submission.StudentName)
	fmt.Fprintf(&sb, "📁 <b>Category:</b> %s\n", rec.Submission.Category)
	fmt.Fprintf(&sb, "📧 <b>Email:</b> %s\n", email)
	fmt.Fprintf(&sb, "⏰ <b>Submitted:</b> %s\n", ts.Format("Monday, January 2, 2006 at 3:04 PM"))
	fmt.Fprintf(&sb, "🌐 <b>Client:</b> %s\n\n", rec.ClientID)
	fmt.Fprintf(&sb, "%s\n\n", messageDivider)
	fmt.Fprintf(&sb, "💬 <b>Reclamation:</b>\n%s\n\n", rec.Submission.Reclamation)
	fmt.Fprintf(&sb, "%s\n\n", messageDivider)
	sb.WriteString(b.Footer)
	return sb.String()
}
