package server

// Inbound requests arrive in a "data" envelope; responses are flat.

type initSessionRequest struct {
	Data *initSessionData `json:"data"`
}

type initSessionData struct {
	CIF               string         `json:"cif"`
	BasicCustomerInfo map[string]any `json:"basicCustomerInfo"`
	TokenKey          string         `json:"tokenKey"`
	Payload           map[string]any `json:"payload"`
}

type renewTokenRequest struct {
	Data *renewTokenData `json:"data"`
}

type renewTokenData struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Message      string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
