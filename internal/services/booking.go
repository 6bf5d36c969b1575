package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stignatiusparish/massbook-gobackend/internal/models"
)

var (
	// ErrNotFound signals that no booking matched the given id or payment
	// reference. Handlers map it to 404; the webhook treats it as a miss.
	ErrNotFound = errors.New("booking not found")

	// ErrValidation signals a malformed id or incomplete booking payload.
	ErrValidation = errors.New("invalid booking")
)

type BookingService struct {
	collection *mongo.Collection
}

func NewBookingService(db *mongo.Database) *BookingService {
	return &BookingService{collection: db.Collection("bookings")}
}

// EnsureIndexes creates the indexes the webhook lookup and list filters rely on
func (s *BookingService) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{Keys: bson.M{"payment_id": 1}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "start_date", Value: 1}}},
		{Keys: bson.M{"created_at": -1}},
	}
	_, err := s.collection.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		log.Printf("Failed to create indexes: %v", err)
		return fmt.Errorf("failed to create indexes: %v", err)
	}
	return nil
}

// Create inserts a new booking, assigning its id and creation time.
func (s *BookingService) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate is required", ErrValidation)
	}

	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()

	if _, err := s.collection.InsertOne(ctx, booking); err != nil {
		log.Printf("Failed to insert booking: %v", err)
		return nil, fmt.Errorf("failed to insert booking: %v", err)
	}

	return booking, nil
}

// MarkPaidByPaymentRef atomically sets the booking matching the given payment
// reference to paid. The second return reports whether the status actually
// changed, so webhook redeliveries can skip re-notification.
func (s *BookingService) MarkPaidByPaymentRef(ctx context.Context, reference string) (*models.Booking, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var before models.Booking
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"payment_id": reference},
		bson.M{"$set": bson.M{"status": models.StatusPaid}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, false, ErrNotFound
		}
		log.Printf("Failed to update booking for payment %s: %v", reference, err)
		return nil, false, fmt.Errorf("failed to update booking: %v", err)
	}

	changed := before.Status != models.StatusPaid
	updated := before
	updated.Status = models.StatusPaid
	return &updated, changed, nil
}

// MarkPaidByID sets a booking to paid by its id, for manual office verification.
func (s *BookingService) MarkPaidByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id %q", ErrValidation, id)
	}

	var booking models.Booking
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"status": models.StatusPaid}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		log.Printf("Failed to verify booking %s: %v", id, err)
		return nil, fmt.Errorf("failed to update booking: %v", err)
	}

	return &booking, nil
}

// Delete permanently removes a booking.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid booking id %q", ErrValidation, id)
	}

	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		log.Printf("Failed to delete booking %s: %v", id, err)
		return fmt.Errorf("failed to delete booking: %v", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// ListOptions narrows a booking listing. Status is an exact match; From and
// To define an overlap window on the booked dates.
type ListOptions struct {
	Status string
	From   *time.Time
	To     *time.Time
}

func (o ListOptions) dateFiltered() bool {
	return o.From != nil || o.To != nil
}

// listFilter builds the Mongo query for ListOptions. The window rule matches
// models.Booking.InWindow: start_date against the (end-of-day normalized)
// upper bound, end_date against the lower bound with no-end_date bookings
// exempt from it.
func listFilter(opts ListOptions) bson.M {
	query := bson.M{}
	if opts.Status != "" {
		query["status"] = opts.Status
	}
	if opts.To != nil {
		query["start_date"] = bson.M{"$lte": models.EndOfDay(*opts.To)}
	}
	if opts.From != nil {
		query["$or"] = []bson.M{
			{"end_date": bson.M{"$gte": *opts.From}},
			{"end_date": nil},
		}
	}
	return query
}

// listSort picks the sort key: booked date when a window is requested (the
// office schedule view), newest-first otherwise.
func listSort(opts ListOptions) bson.D {
	if opts.dateFiltered() {
		return bson.D{{Key: "start_date", Value: 1}}
	}
	return bson.D{{Key: "created_at", Value: -1}}
}

// List returns bookings matching the given filters. An empty result is an
// empty slice, never nil.
func (s *BookingService) List(ctx context.Context, opts ListOptions) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, listFilter(opts), options.Find().SetSort(listSort(opts)))
	if err != nil {
		log.Printf("Failed to fetch bookings: %v", err)
		return nil, fmt.Errorf("failed to fetch bookings: %v", err)
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		log.Printf("Failed to decode bookings: %v", err)
		return nil, fmt.Errorf("failed to decode bookings: %v", err)
	}

	return bookings, nil
}
