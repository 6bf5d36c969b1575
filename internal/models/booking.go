package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuses the backend itself writes. Status is an open string: the office
// frontend filters on values like "office_pending" that never originate here.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Booking represents a Mass-intention booking document in the MongoDB database
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RefID     string             `bson:"ref_id,omitempty" json:"refId,omitempty"`
	PaymentID string             `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Intention string             `bson:"intention,omitempty" json:"intention,omitempty"`
	Time      string             `bson:"time,omitempty" json:"time,omitempty"`
	StartDate time.Time          `bson:"start_date" json:"startDate"`
	EndDate   *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Amount    float64            `bson:"amount,omitempty" json:"amount,omitempty"`
	Status    string             `bson:"status,omitempty" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// EndOfDay returns the last representable instant of t's calendar day, so a
// dateTo filter still includes bookings starting later that same day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}

// InWindow reports whether the booking's active interval intersects the
// [from, to] window. The rule is asymmetric: the upper bound checks
// start_date, the lower bound checks end_date and exempts bookings without
// one, so a single-day booking is only ever excluded by the upper bound.
func (b Booking) InWindow(from, to *time.Time) bool {
	if to != nil && b.StartDate.After(EndOfDay(*to)) {
		return false
	}
	if from != nil && b.EndDate != nil && b.EndDate.Before(*from) {
		return false
	}
	return true
}
