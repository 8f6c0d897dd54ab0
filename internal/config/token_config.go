package config

import "time"

type TokenConfig interface {
	GetJWTSecret() string
	GetTokenExpiry() time.Duration
}

type Token struct{}

var _ TokenConfig = Token{}

func (Token) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "")
}

// GetTokenExpiry returns the validity window shared by access and refresh
// tokens. The pair is minted through one signing path with one lifetime.
func (Token) GetTokenExpiry() time.Duration {
	return time.Duration(GetEnvInt("JWT_EXPIRY_SECONDS", 3600)) * time.Second
}
