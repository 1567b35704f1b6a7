package service

import (
	"fmt"
	"html"
	"strings"

	"tour-manager/internal/models"
)

const messageDateLayout = "2006-01-02 15:04"

// NewTourMessage is the broadcast sent to eligible guides when a tour is
// created. The result is Telegram HTML.
func NewTourMessage(t models.Tour) string {
	var b strings.Builder
	b.WriteString("🚨 <b>New Tour Available!</b>\n\n")
	fmt.Fprintf(&b, "📍 %s\n", html.EscapeString(t.Name))
	fmt.Fprintf(&b, "📅 %s\n", t.Date.Format(messageDateLayout))
	fmt.Fprintf(&b, "🏛️ %s\n", html.EscapeString(t.Venue))
	fmt.Fprintf(&b, "👥 %d participants\n", t.GroupSize)
	fmt.Fprintf(&b, "💰 $%.2f\n\n", t.Price)
	b.WriteString("Apply now through the Tour Guide Manager!")
	return b.String()
}

// AssignmentMessage tells g that it has been assigned to t.
func AssignmentMessage(t models.Tour, g models.Guide) string {
	var b strings.Builder
	if name := strings.TrimSpace(g.Name); name != "" {
		fmt.Fprintf(&b, "🎉 <b>Congratulations, %s!</b>\n\n", html.EscapeString(name))
	} else {
		b.WriteString("🎉 <b>Congratulations!</b>\n\n")
	}
	b.WriteString("You have been assigned to:\n")
	fmt.Fprintf(&b, "📍 %s\n", html.EscapeString(t.Name))
	fmt.Fprintf(&b, "📅 %s\n", t.Date.Format(messageDateLayout))
	fmt.Fprintf(&b, "🏛️ %s\n\n", html.EscapeString(t.Venue))
	b.WriteString("Please confirm your availability!")
	return b.String()
}
