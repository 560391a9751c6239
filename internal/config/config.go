package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                 string
	AppEnv                  string
	AppPort                 string
	DatabaseURL             string
	RedisURL                string
	NatsURL                 string
	JWTSecret               string
	LeaderboardCacheTTL     time.Duration
	AssignmentWeightPercent float64
	AttendanceWeightPercent float64
	TimelinessWeightPercent float64
	RecomputeSubject        string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SKOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "SKOR API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("leaderboard.cache_ttl", "5m")
	v.SetDefault("leaderboard.assignment_weight", 50.0)
	v.SetDefault("leaderboard.attendance_weight", 30.0)
	v.SetDefault("leaderboard.timeliness_weight", 20.0)
	v.SetDefault("nats.recompute_subject", "skor.leaderboard.recompute")

	ttlString := v.GetString("leaderboard.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid leaderboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                 v.GetString("app.name"),
		AppEnv:                  v.GetString("app.env"),
		AppPort:                 v.GetString("app.port"),
		DatabaseURL:             v.GetString("database.url"),
		RedisURL:                v.GetString("redis.url"),
		NatsURL:                 v.GetString("nats.url"),
		JWTSecret:               v.GetString("jwt.secret"),
		LeaderboardCacheTTL:     ttl,
		AssignmentWeightPercent: v.GetFloat64("leaderboard.assignment_weight"),
		AttendanceWeightPercent: v.GetFloat64("leaderboard.attendance_weight"),
		TimelinessWeightPercent: v.GetFloat64("leaderboard.timeliness_weight"),
		RecomputeSubject:        v.GetString("nats.recompute_subject"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
