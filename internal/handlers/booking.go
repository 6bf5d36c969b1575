package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/stignatiusparish/massbook-gobackend/internal/models"
	"github.com/stignatiusparish/massbook-gobackend/internal/notify"
	"github.com/stignatiusparish/massbook-gobackend/internal/paystack"
	"github.com/stignatiusparish/massbook-gobackend/internal/services"
)

// BookingStore is the slice of BookingService the handlers need. Tests
// substitute an in-memory implementation.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	MarkPaidByPaymentRef(ctx context.Context, reference string) (*models.Booking, bool, error)
	MarkPaidByID(ctx context.Context, id string) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts services.ListOptions) ([]models.Booking, error)
}

// BookingHandler handles HTTP requests for bookings
type BookingHandler struct {
	store          BookingStore
	notifier       notify.Notifier
	senderEmail    string
	paystackSecret string
	validate       *validator.Validate
}

// NewBookingHandler creates a new BookingHandler. An empty paystackSecret
// disables webhook signature verification.
func NewBookingHandler(store BookingStore, notifier notify.Notifier, senderEmail, paystackSecret string) *BookingHandler {
	return &BookingHandler{
		store:          store,
		notifier:       notifier,
		senderEmail:    senderEmail,
		paystackSecret: paystackSecret,
		validate:       validator.New(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// parseDate accepts the YYYY-MM-DD form the frontend sends, falling back to
// RFC 3339 for callers that post full timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

type createBookingRequest struct {
	RefID     string  `json:"refId"`
	PaymentID string  `json:"paymentId"`
	Name      string  `json:"name"`
	Email     string  `json:"email" validate:"omitempty,email"`
	Intention string  `json:"intention"`
	Time      string  `json:"time"`
	StartDate string  `json:"startDate" validate:"required"`
	EndDate   string  `json:"endDate"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}

// applyDefaults fills the fields the caller may omit: refId falls back to
// paymentId (the Paystack flow), then to a generated reference for office
// bookings with no payment attached; status falls back to pending.
func applyDefaults(b *models.Booking) {
	if b.RefID == "" {
		b.RefID = b.PaymentID
	}
	if b.RefID == "" {
		b.RefID = "MB-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	}
	if b.Status == "" {
		b.Status = models.StatusPending
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid startDate: "+err.Error())
		return
	}
	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := parseDate(req.EndDate)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid endDate: "+err.Error())
			return
		}
		endDate = &parsed
	}

	booking := &models.Booking{
		RefID:     strings.TrimSpace(req.RefID),
		PaymentID: strings.TrimSpace(req.PaymentID),
		Name:      req.Name,
		Email:     req.Email,
		Intention: req.Intention,
		Time:      req.Time,
		StartDate: startDate,
		EndDate:   endDate,
		Amount:    req.Amount,
		Status:    req.Status,
	}
	applyDefaults(booking)

	created, err := h.store.Create(r.Context(), booking)
	if err != nil {
		log.Printf("Failed to create booking: %v", err)
		if errors.Is(err, services.ErrValidation) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// PaystackWebhook handles POST /api/bookings/webhook/paystack. Paystack
// retries any non-2xx delivery, so past the signature gate this handler
// always acknowledges: unknown events, unmatched references and internal
// failures are logged, never surfaced.
func (h *BookingHandler) PaystackWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Failed to read webhook body: %v", err)
		acknowledge(w)
		return
	}

	if h.paystackSecret != "" {
		signature := r.Header.Get(paystack.SignatureHeader)
		if !paystack.ValidSignature(h.paystackSecret, body, signature) {
			log.Printf("Rejected webhook with invalid signature")
			writeMessage(w, http.StatusUnauthorized, "Invalid signature")
			return
		}
	}

	var event paystack.Event
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Failed to parse webhook payload: %v", err)
		acknowledge(w)
		return
	}

	if event.Event != paystack.EventChargeSuccess {
		log.Printf("Ignoring webhook event %q", event.Event)
		acknowledge(w)
		return
	}

	reference := event.Data.Reference
	booking, changed, err := h.store.MarkPaidByPaymentRef(r.Context(), reference)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Printf("No booking found with paymentId %s", reference)
		} else {
			log.Printf("Failed to update booking for payment %s: %v", reference, err)
		}
		acknowledge(w)
		return
	}

	log.Printf("Booking %s updated to paid", booking.ID.Hex())

	switch {
	case !changed:
		log.Printf("Booking %s was already paid, skipping notification", booking.ID.Hex())
	case booking.Email == "":
		log.Printf("Booking %s has no email, skipping notification", booking.ID.Hex())
	default:
		msg := notify.BookingConfirmation(h.senderEmail, *booking)
		if id, err := h.notifier.Send(r.Context(), msg); err != nil {
			log.Printf("Failed to send confirmation for booking %s: %v", booking.ID.Hex(), err)
		} else if id != "" {
			log.Printf("Confirmation sent for booking %s: message id %s", booking.ID.Hex(), id)
		}
	}

	acknowledge(w)
}

func acknowledge(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Webhook received"))
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	opts := services.ListOptions{Status: r.URL.Query().Get("status")}

	if v := r.URL.Query().Get("dateFrom"); v != "" {
		from, err := parseDate(v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid dateFrom: "+err.Error())
			return
		}
		opts.From = &from
	}
	if v := r.URL.Query().Get("dateTo"); v != "" {
		to, err := parseDate(v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid dateTo: "+err.Error())
			return
		}
		opts.To = &to
	}

	bookings, err := h.store.List(r.Context(), opts)
	if err != nil {
		log.Printf("Failed to fetch bookings: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}

// VerifyBooking handles PATCH /api/bookings/{bookingID}/verify. Staff use it
// to confirm office payments with no gateway transaction behind them.
func (h *BookingHandler) VerifyBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["bookingID"]

	booking, err := h.store.MarkPaidByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Booking not found")
			return
		}
		log.Printf("Failed to verify booking %s: %v", id, err)
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// DeleteBooking handles DELETE /api/bookings/{bookingID}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["bookingID"]

	if err := h.store.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			writeMessage(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Booking not found")
		default:
			log.Printf("Failed to delete booking %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to delete booking")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Booking deleted")
}
