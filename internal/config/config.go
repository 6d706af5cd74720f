package config // package config loads application configuration from environment variables

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv" // optional .env file for local development
	"golang.org/x/crypto/bcrypt"
)

// DevelopmentEnv is the APP_ENV value that relaxes cookie security so the
// frontend can run over plain http on localhost.
const DevelopmentEnv = "Development"

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env            string        // runtime mode; "Development" disables Secure cookies
	Port           string        // HTTP port to listen on
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	JWTSecret      string        // secret used to sign session tokens
	JWTExpire      time.Duration // session lifetime
	CookieName     string        // name of the session cookie
	AllowedOrigins []string      // CORS origins allowed to send credentials
	BcryptCost     int           // bcrypt cost for password hashing
	RabbitMQURL    string        // broker for reservation events; empty disables them
	AuditLogPath   string        // file the audit consumer appends to
}

// IsDevelopment reports whether the service runs in development mode.
func (c Config) IsDevelopment() bool { return strings.EqualFold(c.Env, DevelopmentEnv) }

// Load reads a .env file when present and then builds a Config from the
// environment.  Every missing required variable is reported in one error.
func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env is normal outside local development

	var missing []string
	must := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		Env:            getenv("APP_ENV", "Production"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		CookieName:     getenv("COOKIE_NAME", "token"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174")),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		AuditLogPath:   getenv("AUDIT_LOG_PATH", "logs/reservations.log"),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}

	exp, err := ParseExpire(getenv("JWT_EXPIRE", "7d"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWT_EXPIRE: %w", err)
	}
	cfg.JWTExpire = exp

	cost, err := strconv.Atoi(getenv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("invalid BCRYPT_COST: must be an integer between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	cfg.BcryptCost = cost
	return cfg, nil
}

// MySQLDSN returns the go-sql-driver DSN for the configured database.
func (c Config) MySQLDSN() string {
	auth := c.DBUser
	if c.DBPass != "" {
		auth = fmt.Sprintf("%s:%s", c.DBUser, c.DBPass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC", auth, c.DBHost, c.DBPort, c.DBName)
}

// ParseExpire accepts a Go duration ("168h") or a whole number of days
// ("7d").  The result must be positive.
func ParseExpire(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	var d time.Duration
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number of days", s)
		}
		d = time.Duration(n) * 24 * time.Hour
	} else {
		var err error
		if d, err = time.ParseDuration(s); err != nil {
			return 0, err
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("%q must be positive", s)
	}
	return d, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
