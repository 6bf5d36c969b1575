package main

import (
	"context"
	"log"
	"net/http"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/stignatiusparish/massbook-gobackend/internal/config"
	"github.com/stignatiusparish/massbook-gobackend/internal/db"
	"github.com/stignatiusparish/massbook-gobackend/internal/handlers"
	"github.com/stignatiusparish/massbook-gobackend/internal/notify"
	"github.com/stignatiusparish/massbook-gobackend/internal/services"
)

func main() {
	// Load .env
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env: %s", err)
	}

	cfg := config.Load()
	if cfg.MongoURI == "" {
		log.Fatal("MONGOURI environment variable not set")
	}

	client, err := db.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	log.Println("Successfully connected to MongoDB")

	database := client.Database(cfg.DBName)

	bookingService := services.NewBookingService(database)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := bookingService.EnsureIndexes(ctx); err != nil {
			log.Printf("Warning: %v", err)
		}
		cancel()
	}

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.BrevoAPIKey != "" && cfg.SenderEmail != "" {
		notifier = notify.NewBrevo(cfg.BrevoAPIKey, cfg.SenderName)
		log.Println("Email notifications enabled")
	} else {
		log.Println("Email not configured, confirmations will be logged only")
	}

	if cfg.PaystackSecretKey == "" {
		log.Println("PAYSTACK_SECRET_KEY not set, webhook signatures will not be verified")
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, notifier, cfg.SenderEmail, cfg.PaystackSecretKey)

	// Set up router
	router := mux.NewRouter()
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")

	router.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	router.HandleFunc("/api/bookings", bookingHandler.ListBookings).Methods("GET")
	router.HandleFunc("/api/bookings/webhook/paystack", bookingHandler.PaystackWebhook).Methods("POST")
	router.HandleFunc("/api/bookings/{bookingID}/verify", bookingHandler.VerifyBooking).Methods("PATCH")
	router.HandleFunc("/api/bookings/{bookingID}", bookingHandler.DeleteBooking).Methods("DELETE")

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "x-paystack-signature"}),
	)

	// Start server
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      cors(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(server.ListenAndServe())
}
