package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Reservation ReservationConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// ReservationConfig holds the tuning knobs of the seat-lock protocol.
type ReservationConfig struct {
	LockTTLMinutes         int
	LockWaitTimeoutSeconds int
	SweepIntervalSeconds   int
	SweepBatchSize         int
	PremiumPriceMultiplier float64
	VIPPriceMultiplier     float64
}

// LockTTL returns the seat lock time-to-live as a duration.
func (c ReservationConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLMinutes) * time.Minute
}

// SweepInterval returns how often the expired-lock sweeper runs.
func (c ReservationConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

// LockWaitTimeout bounds how long an acquire may wait on a seat row lock.
func (c ReservationConfig) LockWaitTimeout() time.Duration {
	return time.Duration(c.LockWaitTimeoutSeconds) * time.Second
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SEAT_LOCK_TTL_MINUTES", 10)
	viper.SetDefault("LOCK_WAIT_TIMEOUT_SECONDS", 3)
	viper.SetDefault("LOCK_SWEEP_INTERVAL_SECONDS", 60)
	viper.SetDefault("LOCK_SWEEP_BATCH_SIZE", 500)
	viper.SetDefault("PREMIUM_PRICE_MULTIPLIER", 1.25)
	viper.SetDefault("VIP_PRICE_MULTIPLIER", 1.5)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Reservation: ReservationConfig{
			LockTTLMinutes:         viper.GetInt("SEAT_LOCK_TTL_MINUTES"),
			LockWaitTimeoutSeconds: viper.GetInt("LOCK_WAIT_TIMEOUT_SECONDS"),
			SweepIntervalSeconds:   viper.GetInt("LOCK_SWEEP_INTERVAL_SECONDS"),
			SweepBatchSize:         viper.GetInt("LOCK_SWEEP_BATCH_SIZE"),
			PremiumPriceMultiplier: viper.GetFloat64("PREMIUM_PRICE_MULTIPLIER"),
			VIPPriceMultiplier:     viper.GetFloat64("VIP_PRICE_MULTIPLIER"),
		},
	}

	return config, nil
}
