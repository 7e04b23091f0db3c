package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Solver   SolverConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
}

// SolverConfig mirrors the recognised configuration options of spec §6,
// mapped onto a csp.Config by the cmd entry points.
type SolverConfig struct {
	MaxBacktracks int
	MaxAttempts   int
	PrintInterval int
	DayCap        int

	LabCourses         []string
	OrphanCourses      []string
	InstructorPrefixes []string
	RoomPromotionN     int

	Seed     int64
	CacheTTL time.Duration
}

// DatabaseConfig points at the SQLite export file the Result Sink writes.
type DatabaseConfig struct {
	Path string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Solver = SolverConfig{
		MaxBacktracks:      v.GetInt("MAX_BACKTRACKS"),
		MaxAttempts:        v.GetInt("MAX_ATTEMPTS"),
		PrintInterval:      v.GetInt("PRINT_INTERVAL"),
		DayCap:             v.GetInt("DAY_CAP"),
		LabCourses:         splitAndTrim(v.GetString("LAB_COURSES")),
		OrphanCourses:      splitAndTrim(v.GetString("ORPHAN_COURSES")),
		InstructorPrefixes: splitAndTrim(v.GetString("INSTRUCTOR_PREFIXES")),
		RoomPromotionN:     v.GetInt("ROOM_PROMOTION_N"),
		Seed:               parseInt64(v.GetString("SOLVER_SEED"), 0),
		CacheTTL:           parseDuration(v.GetString("SOLVE_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Database = DatabaseConfig{
		Path: v.GetString("SQLITE_PATH"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("MAX_BACKTRACKS", 100_000)
	v.SetDefault("MAX_ATTEMPTS", 3)
	v.SetDefault("PRINT_INTERVAL", 500)
	v.SetDefault("DAY_CAP", 55)
	v.SetDefault("LAB_COURSES", "")
	v.SetDefault("ORPHAN_COURSES", "")
	v.SetDefault("INSTRUCTOR_PREFIXES", "")
	v.SetDefault("ROOM_PROMOTION_N", 20)
	v.SetDefault("SOLVER_SEED", "0")
	v.SetDefault("SOLVE_CACHE_TTL", "10m")

	v.SetDefault("SQLITE_PATH", "./timetables.db")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func parseInt64(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
