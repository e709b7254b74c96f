package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Kiosk    KioskConfig
}

type AppConfig struct {
	Port           int
	Env            string
	Timezone       string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

// KioskConfig configures the capture agent binary.
type KioskConfig struct {
	PortalURL   string
	AccessToken string

	// Camera snapshot endpoint exposed by the local webcam streamer.
	CameraSnapshotURL string

	// Position source: "static" uses the fixed coordinates below, "gpsd"
	// polls PositionURL.
	PositionSource string
	PositionURL    string
	StaticLat      float64
	StaticLon      float64
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Kolkata"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_portal"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	staticLat, err := strconv.ParseFloat(getEnv("KIOSK_STATIC_LAT", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_STATIC_LAT: %w", err)
	}
	staticLon, err := strconv.ParseFloat(getEnv("KIOSK_STATIC_LON", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_STATIC_LON: %w", err)
	}

	config.Kiosk = KioskConfig{
		PortalURL:         getEnv("KIOSK_PORTAL_URL", "http://localhost:8080"),
		AccessToken:       getEnv("KIOSK_ACCESS_TOKEN", ""),
		CameraSnapshotURL: getEnv("KIOSK_CAMERA_SNAPSHOT_URL", "http://localhost:8081/snapshot.jpg"),
		PositionSource:    getEnv("KIOSK_POSITION_SOURCE", "static"),
		PositionURL:       getEnv("KIOSK_POSITION_URL", ""),
		StaticLat:         staticLat,
		StaticLon:         staticLon,
	}

	return config, nil
}

// DatabaseURL builds the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	raw := getEnv(key, fallback)

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
