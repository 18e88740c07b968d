package config

import (
	"main/utils"
	"time"
)

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "lifesync"),
	}
}

type RedisConfig struct {
	URL string
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		URL: utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
	}
}

// ClockConfig points the trusted clock at its two probe targets.
type ClockConfig struct {
	OriginURL  string
	TimeAPIURL string
}

func LoadClockConfig() ClockConfig {
	return ClockConfig{
		OriginURL:  utils.GetEnvAsString("TIME_ORIGIN_URL", ""),
		TimeAPIURL: utils.GetEnvAsString("TIME_API_URL", "https://worldtimeapi.org/api/ip"),
	}
}

// CryptoConfig carries the static application secret mixed into per-user
// field-encryption keys.
type CryptoConfig struct {
	AppSecret string
}

func LoadCryptoConfig() CryptoConfig {
	return CryptoConfig{
		AppSecret: utils.GetEnvAsString("APP_ENCRYPTION_SECRET", "life-sync-secure-salt-v1"),
	}
}
