package config

import "os"

// Config carries everything read from the environment at startup. It is
// loaded once in main and passed down; nothing else reads the environment.
type Config struct {
	Port              string
	MongoURI          string
	DBName            string
	PaystackSecretKey string
	BrevoAPIKey       string
	SenderEmail       string
	SenderName        string
}

// Load reads the process configuration. MongoURI is the only required value;
// the caller decides whether its absence is fatal.
func Load() Config {
	cfg := Config{
		Port:              os.Getenv("PORT"),
		MongoURI:          os.Getenv("MONGOURI"),
		DBName:            os.Getenv("DB_NAME"),
		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		BrevoAPIKey:       os.Getenv("BREVO_API_KEY"),
		SenderEmail:       os.Getenv("EMAIL_SENDER"),
		SenderName:        os.Getenv("EMAIL_SENDER_NAME"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBName == "" {
		cfg.DBName = "parishdb"
	}
	return cfg
}
