package config

import "time"

type RedisConfig interface {
	GetRedisURL() string
	GetRedisHost() string
	GetRedisPort() string
	GetRedisPassword() string
	GetRedisDB() int
	GetSessionTTL() time.Duration
}

type Redis struct{}

var _ RedisConfig = Redis{}

// GetRedisURL returns a full Redis connection URL. When set it overrides the
// discrete host/port/password/db settings.
func (Redis) GetRedisURL() string {
	return GetEnv("REDIS_URL", "")
}

func (Redis) GetRedisHost() string {
	return GetEnv("REDIS_HOST", "localhost")
}

func (Redis) GetRedisPort() string {
	return GetEnv("REDIS_PORT", "6379")
}

func (Redis) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Redis) GetRedisDB() int {
	return GetEnvInt("REDIS_DB", 0)
}

// GetSessionTTL returns the idle lifetime of a stored session. Every
// successful renewal rewrites the full window.
func (Redis) GetSessionTTL() time.Duration {
	return time.Duration(GetEnvInt("SME_SESSION_TTL", 3600)) * time.Second
}
