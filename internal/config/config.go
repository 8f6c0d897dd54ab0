package config

type Config interface {
	EnvConfig
	RedisConfig
	TokenConfig
	VerifierConfig
}

type mainConfig struct {
	EnvVars
	Redis
	Token
	Verifier
}

func New() Config {
	return mainConfig{}
}
