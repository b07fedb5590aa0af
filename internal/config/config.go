package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port     string
	LogFile  string
	MediaDir string

	// Catalog backends. RemoteURL+RemoteKey select the hosted store; DBDSN
	// selects the local sqlite mirror; neither means the bundled dataset.
	RemoteURL string
	RemoteKey string
	DBDSN     string

	// Generative-text service for the order-ready email.
	GenTextKey   string
	GenTextModel string

	// WhatsApp number the order summary deep link targets.
	WhatsAppNumber string

	// Admin gate. AdminPassHash is a bcrypt hash; when ADMIN_PASS_HASH is
	// unset the development default password is hashed at load.
	AdminUser     string
	AdminPassHash string
	AdminPath     string

	// Order lifecycle delays (pending->ready, ready->completed).
	ReadyDelay    time.Duration
	CompleteDelay time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("[config] bad duration for %s=%q, using %s", key, v, def)
	}
	return def
}

func Load() Config {
	// Best effort: a missing .env is the normal production case.
	_ = godotenv.Load()

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		LogFile:        os.Getenv("LOG_FILE"),
		MediaDir:       getenv("MEDIA_DIR", "./web/media"),
		RemoteURL:      os.Getenv("REMOTE_STORE_URL"),
		RemoteKey:      os.Getenv("REMOTE_STORE_KEY"),
		DBDSN:          os.Getenv("DB_DSN"),
		GenTextKey:     os.Getenv("GENTEXT_API_KEY"),
		GenTextModel:   getenv("GENTEXT_MODEL", "gemini-2.5-flash"),
		WhatsAppNumber: getenv("WHATSAPP_NUMBER", "201105049122"),
		AdminUser:      getenv("ADMIN_USER", "admin"),
		AdminPassHash:  os.Getenv("ADMIN_PASS_HASH"),
		AdminPath:      getenv("ADMIN_PATH", "/admin"),
		ReadyDelay:     getdur("ORDER_READY_DELAY", 5*time.Second),
		CompleteDelay:  getdur("ORDER_COMPLETE_DELAY", 15*time.Second),
	}

	if cfg.AdminPassHash == "" {
		// Development fallback only; set ADMIN_PASS_HASH in any real deployment.
		h, _ := bcrypt.GenerateFromPassword([]byte("secure123"), bcrypt.DefaultCost)
		cfg.AdminPassHash = string(h)
		log.Printf("[config] ADMIN_PASS_HASH not set, using development default credentials")
	}

	log.Printf("[config] PORT=%s remote=%t local_db=%t gentext=%t",
		cfg.Port, cfg.RemoteURL != "", cfg.DBDSN != "", cfg.GenTextKey != "")
	return cfg
}
