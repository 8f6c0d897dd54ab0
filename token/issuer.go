package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidToken reports a bad signature or an expired token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMalformedClaims reports a verified token whose claims are
	// structurally unusable.
	ErrMalformedClaims = errors.New("malformed claims")
)

// Claims is the identity carried inside every issued token. It is never
// persisted standalone.
type Claims struct {
	ChatUsername string
	BU           string
	CIF          string
	TokenKey     string
}

// Issuer mints and decodes the access/refresh token pair. Both tokens share
// one signing path, claim set, and validity window.
type Issuer struct {
	signer  Signer
	expiry  time.Duration
	nowFunc func() time.Time
}

type IssuerOption func(*Issuer)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowFunc = now
	}
}

func NewIssuer(signer Signer, expiry time.Duration, options ...IssuerOption) *Issuer {
	issuer := &Issuer{
		signer:  signer,
		expiry:  expiry,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(issuer)
	}
	if issuer.expiry == 0 {
		issuer.expiry = time.Hour
	}
	return issuer
}

// Mint creates a single signed token for the given claims.
func (i *Issuer) Mint(claims Claims) (string, error) {
	mapClaims := jwt.MapClaims{
		"chatUsername": claims.ChatUsername,
		"bu":           claims.BU,
		"cif":          claims.CIF,
		"tokenKey":     claims.TokenKey,
		"iat":          int64(i.nowFunc().Unix()),
		"exp":          int64(i.nowFunc().Add(i.expiry).Unix()),
		"jti":          uuid.New().String(),
	}

	signedToken, err := i.signer.Sign(mapClaims)
	if err != nil {
		return "", errors.Wrap(err, "[Issuer.Mint] signer.Sign")
	}
	return signedToken, nil
}

// MintPair creates the access and refresh tokens for a claim set. The two
// differ only in their jti.
func (i *Issuer) MintPair(claims Claims) (accessToken, refreshToken string, err error) {
	if accessToken, err = i.Mint(claims); err != nil {
		return "", "", err
	}
	if refreshToken, err = i.Mint(claims); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// Decode verifies a token and extracts its claims. A bad signature or an
// expired token returns ErrInvalidToken; a verified token with unusable
// claims returns ErrMalformedClaims.
func (i *Issuer) Decode(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.NewParser(jwt.WithTimeFunc(i.nowFunc)).Parse(rawToken, i.signer.GetVerificationKey)
	if err != nil || !parsed.Valid {
		return nil, errors.Wrap(ErrInvalidToken, "[Issuer.Decode] jwt.Parse")
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.Wrap(ErrMalformedClaims, "[Issuer.Decode] claims extraction")
	}

	chatUsername, _ := mapClaims["chatUsername"].(string)
	bu, _ := mapClaims["bu"].(string)
	cif, _ := mapClaims["cif"].(string)
	tokenKey, _ := mapClaims["tokenKey"].(string)

	return &Claims{
		ChatUsername: chatUsername,
		BU:           bu,
		CIF:          cif,
		TokenKey:     tokenKey,
	}, nil
}
