package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server needs from the environment. It is
// built once in main and handed to each component, so nothing reads
// os.Getenv after startup.
type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	DBName string `env:"DB_NAME" envDefault:"bughub_db"`

	MongoURI  string `env:"MONGODB_URI,required,notEmpty"`
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// API key the report-submission widget authenticates with.
	APIKey string `env:"API_KEY,required,notEmpty"`

	GCSBucket         string `env:"GCS_BUCKET" envDefault:"bughub-attachments"`
	GoogleCredentials string `env:"GOOGLE_APPLICATION_CREDENTIALS,required,notEmpty"`

	// SMTP settings for the new-report notification. Leaving EmailFrom
	// empty disables the mailer.
	SMTPHost  string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort  string `env:"SMTP_PORT" envDefault:"587"`
	EmailFrom string `env:"EMAIL_FROM"`
	EmailPass string `env:"EMAIL_PASS"`
	EmailTo   string `env:"EMAIL_TO"`

	// Allowed CORS origins. Empty means reflect the request origin.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
