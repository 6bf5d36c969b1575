package notify

import (
	"fmt"
	"time"

	"github.com/stignatiusparish/massbook-gobackend/internal/models"
)

// HumanDateRange formats the booked dates for the confirmation email.
func HumanDateRange(start time.Time, end *time.Time) string {
	if end == nil || end.Equal(start) {
		return start.Format("January 2, 2006")
	}
	return fmt.Sprintf("%s to %s", start.Format("January 2, 2006"), end.Format("January 2, 2006"))
}

// BookingConfirmation builds the payment-confirmation message for a booking.
func BookingConfirmation(from string, b models.Booking) Message {
	dates := HumanDateRange(b.StartDate, b.EndDate)
	text := fmt.Sprintf(
		"Your Mass intention booking %s is confirmed.\n\nDates: %s\nTime: %s\nIntention: %s\nAmount: %.2f\n\nThank you.",
		b.RefID, dates, b.Time, b.Intention, b.Amount)
	html := fmt.Sprintf(
		"<p>Your Mass intention booking <strong>%s</strong> is confirmed.</p>"+
			"<ul><li>Dates: %s</li><li>Time: %s</li><li>Intention: %s</li><li>Amount: %.2f</li></ul>"+
			"<p>Thank you.</p>",
		b.RefID, dates, b.Time, b.Intention, b.Amount)

	return Message{
		From:    from,
		To:      b.Email,
		Subject: "Mass intention booking " + b.RefID + " confirmed",
		Text:    text,
		HTML:    html,
	}
}
