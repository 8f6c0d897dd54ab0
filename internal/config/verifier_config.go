package config

type VerifierConfig interface {
	GetSMEVerifyBaseURL() string
	GetSMEVerifyTokenKey() string
}

type Verifier struct{}

var _ VerifierConfig = Verifier{}

func (Verifier) GetSMEVerifyBaseURL() string {
	return GetEnv("SME_VERIFY_BASE_URL", "")
}

func (Verifier) GetSMEVerifyTokenKey() string {
	return GetEnv("SME_VERIFY_TOKEN_KEY", "")
}
