package config

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cyberguard/console/logging"
	"github.com/cyberguard/console/models"
)

// DefaultBaseURL is the CyberGuard backend the console talks to
const DefaultBaseURL = "https://cybergaurd-backend-2.onrender.com"

// Config holds the project config values
type Config struct {
	Env            string
	Port           string
	BaseURL        string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	SessionFile    string
	SessionSecret  string
	AdminUsername  string
	AdminPassword  string
	SeedDemoData   bool
}

// New sets up all config related services
func New() *Config {
	// a missing .env is fine, the environment wins anyway
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	v := viper.New()
	v.SetDefault("ENV", "local")
	v.SetDefault("PORT", "8080")
	v.SetDefault("BASE_URL", DefaultBaseURL)
	v.SetDefault("POLL_INTERVAL", 10*time.Second)
	v.SetDefault("REQUEST_TIMEOUT", 15*time.Second)
	v.SetDefault("SESSION_FILE", ".cyberguard-session")
	v.SetDefault("SESSION_SECRET", "cyberguard-dev-only-session-secret")
	v.SetDefault("ADMIN_USERNAME", "Admin123")
	v.SetDefault("ADMIN_PASSWORD", "Admin@123")
	v.SetDefault("SEED_DEMO_DATA", true)
	v.AutomaticEnv()

	conf := &Config{
		Env:            v.GetString("ENV"),
		Port:           v.GetString("PORT"),
		BaseURL:        v.GetString("BASE_URL"),
		PollInterval:   v.GetDuration("POLL_INTERVAL"),
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		SessionFile:    v.GetString("SESSION_FILE"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		AdminUsername:  v.GetString("ADMIN_USERNAME"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		SeedDemoData:   v.GetBool("SEED_DEMO_DATA"),
	}

	//setup zap logger and replace default logger
	logger, err := setLogger(conf.Env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return conf
}

func setLogger(env string) (*zap.Logger, error) {
	return logging.New(env)
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error, fields ...string) {
	zap.S().Errorw(message, "error", err, "status", httpStatusCode)
	resp := models.ErrorMessageResponse{Response: models.MessageError{Message: message, Fields: fields}}
	if err != nil {
		resp.Response.Error = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_ = json.NewEncoder(w).Encode(resp)
}
