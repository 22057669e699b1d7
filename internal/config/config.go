package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tenniscourt/internal/domain"
)

const (
	defaultAppEnv          = "dev"
	defaultDatabaseURL     = "tennis.db"
	defaultHTTPAddr        = ":8080"
	defaultShutdownTimeout = "10s"
	defaultCORSOrigins     = "*"
	defaultOpenTime        = "07:00"
	defaultCloseTime       = "22:00"
	defaultUnroofedStart   = "05-01"
	defaultUnroofedEnd     = "08-31"
	defaultUnroofedRateIn  = "30"
	defaultUnroofedRateOff = "20"
	defaultRoofedStart     = "10-01"
	defaultRoofedEnd       = "03-31"
	defaultRoofedRateIn    = "50"
	defaultRoofedRateOff   = "40"
)

type Config struct {
	AppEnv          string
	DatabaseURL     string
	HTTPAddr        string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	// Facility is the fallback used until a facility row is stored.
	Facility *domain.FacilityConfig
}

// Load reads the environment, after merging a .env file when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration. Season edges are given as MM-DD and
// repeat every year.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = defaultAppEnv
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", defaultCORSOrigins))

	var err error
	cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	cfg.Facility, err = facilityFromEnv()
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config: env=%s addr=%s open=%s close=%s", cfg.AppEnv, cfg.HTTPAddr, cfg.Facility.OpenTime, cfg.Facility.CloseTime)

	return cfg, nil
}

func facilityFromEnv() (*domain.FacilityConfig, error) {
	f := &domain.FacilityConfig{
		OpenTime:  strings.TrimSpace(getEnv("FACILITY_OPEN_TIME", defaultOpenTime)),
		CloseTime: strings.TrimSpace(getEnv("FACILITY_CLOSE_TIME", defaultCloseTime)),
	}

	unroofed, err := seasonFromEnv(domain.CourtUnroofed, "UNROOFED",
		defaultUnroofedStart, defaultUnroofedEnd, defaultUnroofedRateIn, defaultUnroofedRateOff)
	if err != nil {
		return nil, err
	}
	roofed, err := seasonFromEnv(domain.CourtRoofed, "ROOFED",
		defaultRoofedStart, defaultRoofedEnd, defaultRoofedRateIn, defaultRoofedRateOff)
	if err != nil {
		return nil, err
	}
	f.Seasons = []domain.Season{unroofed, roofed}
	return f, nil
}

func seasonFromEnv(kind domain.CourtKind, prefix, start, end, rateIn, rateOff string) (domain.Season, error) {
	s := domain.Season{CourtKind: kind}
	var err error
	if s.Window.Start, err = parseMonthDayEnv(prefix+"_SEASON_START", start); err != nil {
		return s, err
	}
	if s.Window.End, err = parseMonthDayEnv(prefix+"_SEASON_END", end); err != nil {
		return s, err
	}
	if s.InSeasonRate, err = parseFloatEnv(prefix+"_RATE_IN_SEASON", rateIn); err != nil {
		return s, err
	}
	if s.OffSeasonRate, err = parseFloatEnv(prefix+"_RATE_OFF_SEASON", rateOff); err != nil {
		return s, err
	}
	return s, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if err := cfg.Facility.Validate(); err != nil {
		return fmt.Errorf("facility config: %w", err)
	}

	if IsProdLike(cfg.AppEnv) {
		if cfg.DatabaseURL == defaultDatabaseURL {
			return fmt.Errorf("in prod/release DATABASE_URL must be set and not default")
		}
		for _, o := range cfg.CORSOrigins {
			if o == "*" {
				return fmt.Errorf("in prod/release CORS_ORIGINS must not contain *")
			}
		}
	}

	return nil
}

// IsProdLike reports whether env names a production deployment.
func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseFloatEnv(name, fallback string) (float64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
}

func parseMonthDayEnv(name, fallback string) (domain.MonthDay, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	md, err := domain.ParseMonthDay(value)
	if err != nil {
		return domain.MonthDay{}, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return md, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
