package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultGeocoderURL = "https://nominatim.openstreetmap.org"
	defaultTileURL     = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
)

// New reads the configuration from the environment. All missing or malformed variables are reported together.
func New() (Config, error) {
	var errs []error
	env := environment{errs: &errs}

	c := Config{
		BasePath:     env.getOrDefault("BASE_PATH", ""),
		Hostname:     env.getOrDefault("HOSTNAME", "localhost"),
		UIURL:        env.getOrDefault("UI_URL", "http://localhost:3000"),
		Timezone:     env.getOrDefault("TIMEZONE", "UTC"),
		LogLevel:     env.getOrDefault("LOG_LEVEL", "info"),
		LogPretty:    env.getOrDefault("LOG_PRETTY", "false") == "true",
		SameSiteMode: sameSiteMode(env.getOrDefault("SAME_SITE_MODE", "strict")),
		Postgresql: Postgresql{
			Host:         env.require("DATABASE_HOST"),
			Port:         env.requireInt("DATABASE_PORT"),
			Username:     env.require("DATABASE_USERNAME"),
			Password:     env.require("DATABASE_PASSWORD"),
			DatabaseName: env.require("DATABASE_NAME"),
		},
		Redis: Redis{
			Host: env.require("REDIS_HOST"),
			Port: env.requireInt("REDIS_PORT"),
		},
		RabbitMq: RabbitMq{
			Host:     env.getOrDefault("RABBITMQ_HOST", ""),
			Port:     env.intOrDefault("RABBITMQ_PORT", 5672),
			Username: env.getOrDefault("RABBITMQ_USERNAME", "guest"),
			Password: env.getOrDefault("RABBITMQ_PASSWORD", "guest"),
		},
		SMTP: SMTP{
			Host:     env.require("SMTP_HOST"),
			Port:     env.requireInt("SMTP_PORT"),
			Username: env.require("SMTP_USERNAME"),
			Password: env.require("SMTP_PASSWORD"),
			From:     env.getOrDefault("SMTP_FROM", "Hotspot <no-reply@hotspot.events>"),
		},
		Authentication: Authentication{
			Keys: keys{
				PrivateKey: env.require("PRIVATE_KEY"),
			},
			RefreshTokenSecretKey:         env.require("REFRESH_TOKEN_SECRET"),
			AccessTokenExpirationSeconds:  env.intOrDefault("ACCESS_TOKEN_EXPIRATION_IN_SECONDS", 900),
			RefreshTokenExpirationSeconds: env.intOrDefault("REFRESH_TOKEN_EXPIRATION_IN_SECONDS", 86400),
		},
		Geocoder: Geocoder{
			URL:             env.getOrDefault("GEOCODER_URL", defaultGeocoderURL),
			UserAgent:       env.getOrDefault("GEOCODER_USER_AGENT", "hotspot-events/1.0"),
			CacheTTLSeconds: env.intOrDefault("GEOCODER_CACHE_TTL_SECONDS", 86400),
		},
		Map: Map{
			TileURL: env.getOrDefault("MAP_TILE_URL", defaultTileURL),
			Zoom:    env.intOrDefault("MAP_ZOOM", 16),
		},
		Reminder: Reminder{
			Cron:        env.getOrDefault("REMINDER_CRON", "*/15 * * * *"),
			WindowHours: env.intOrDefault("REMINDER_WINDOW_HOURS", 24),
		},
		Tracing: Tracing{
			JaegerEndpoint: env.getOrDefault("JAEGER_ENDPOINT", ""),
		},
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid TIMEZONE %q: %v", c.Timezone, err))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return c, nil
}

type Config struct {
	BasePath       string
	Hostname       string
	UIURL          string
	Timezone       string
	LogLevel       string
	LogPretty      bool
	SameSiteMode   http.SameSite
	Postgresql     Postgresql
	Redis          Redis
	RabbitMq       RabbitMq
	SMTP           SMTP
	Authentication Authentication
	Geocoder       Geocoder
	Map            Map
	Reminder       Reminder
	Tracing        Tracing
}

// Location returns the time zone event dates and times are interpreted in.
func (c Config) Location() *time.Location {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

type Redis struct {
	Host string
	Port int
}

type RabbitMq struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Enabled reports whether notifications should be queued through RabbitMQ.
func (r RabbitMq) Enabled() bool {
	return r.Host != ""
}

func (r RabbitMq) GetUrl() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", r.Username, r.Password, r.Host, r.Port)
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Authentication struct {
	Keys                          keys
	RefreshTokenSecretKey         string
	AccessTokenExpirationSeconds  int
	RefreshTokenExpirationSeconds int
}

type keys struct {
	PrivateKey string
}

// GetPrivateKey parses the PEM encoded RSA private key. Both PKCS#1 and PKCS#8 encodings are accepted.
func (k keys) GetPrivateKey() (*rsa.PrivateKey, error) {
	decode, _ := pem.Decode([]byte(k.PrivateKey))
	if decode == nil {
		return nil, errors.New("failed to decode private key")
	}

	if key, err := x509.ParsePKCS1PrivateKey(decode.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(decode.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %v", err)
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not an RSA key")
	}
	return key, nil
}

func (k keys) GetPublicKey() (*rsa.PublicKey, error) {
	key, err := k.GetPrivateKey()
	if err != nil {
		return nil, err
	}
	return &key.PublicKey, nil
}

type Geocoder struct {
	URL             string
	UserAgent       string
	CacheTTLSeconds int
}

func (g Geocoder) CacheTTL() time.Duration {
	return time.Duration(g.CacheTTLSeconds) * time.Second
}

type Map struct {
	TileURL string
	Zoom    int
}

type Reminder struct {
	Cron        string
	WindowHours int
}

func (r Reminder) Window() time.Duration {
	return time.Duration(r.WindowHours) * time.Hour
}

type Tracing struct {
	JaegerEndpoint string
}

type environment struct {
	errs *[]error
}

func (e environment) require(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*e.errs = append(*e.errs, fmt.Errorf("can't find environment variable: %s", key))
	}
	return value
}

func (e environment) requireInt(key string) int {
	valueStr := e.require(key)
	if valueStr == "" {
		return 0
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		*e.errs = append(*e.errs, fmt.Errorf("can't parse %s as integer: %v", key, err))
	}
	return value
}

func (e environment) getOrDefault(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	return value
}

func (e environment) intOrDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		*e.errs = append(*e.errs, fmt.Errorf("can't parse %s as integer: %v", key, err))
	}
	return value
}

func sameSiteMode(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
