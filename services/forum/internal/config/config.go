package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// devJWTSecret is only accepted outside production.
const devJWTSecret = "forum-dev-secret-change-me"

type ForumConfig struct {
	DatabaseURL    string
	JWTSecret      []byte
	AccessTokenTTL time.Duration
	GRPCAddr       string
	AutoMigrate    bool
	BcryptCost     int
	NATSEnabled    bool
}

func LoadForum(production bool) (ForumConfig, error) {
	cfg := ForumConfig{
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AccessTokenTTL: parseDurationWithDefault(os.Getenv("ACCESS_TOKEN_TTL"), 3*time.Hour),
		GRPCAddr:       strings.TrimSpace(os.Getenv("GRPC_ADDR")),
		AutoMigrate:    parseBool(os.Getenv("AUTO_MIGRATE")),
		BcryptCost:     parseIntWithDefault(os.Getenv("BCRYPT_COST"), bcrypt.DefaultCost),
		NATSEnabled:    parseBool(os.Getenv("NATS_ENABLED")),
	}
	if cfg.GRPCAddr == "" {
		cfg.GRPCAddr = ":9090"
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return ForumConfig{}, errors.New("BCRYPT_COST out of range")
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	switch {
	case secret != "":
		cfg.JWTSecret = []byte(secret)
	case production:
		return ForumConfig{}, errors.New("JWT_SECRET is required")
	default:
		cfg.JWTSecret = []byte(devJWTSecret)
	}

	if production && cfg.DatabaseURL == "" {
		return ForumConfig{}, errors.New("DATABASE_URL is required in production")
	}
	return cfg, nil
}

func parseDurationWithDefault(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseIntWithDefault(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func parseBool(v string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(v))
	return b
}
