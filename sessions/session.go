package sessions

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

const (
	// KeyPrefix namespaces every stored session under "session:".
	KeyPrefix = "session:"

	// usernameNamespace prefixes every derived chat username.
	usernameNamespace = "VPB"
)

// SessionData is the durable unit of session state, one record per active
// postlogin user. It is created once at initialization and read-modified-
// written on every renewal; expiry is delegated entirely to the store TTL.
type SessionData struct {
	CIF               string         // External customer identifier
	ChatUsername      string         // Derived login name: VPB-<BU>-<CIF>
	BasicCustomerInfo map[string]any // Passthrough profile attributes, never interpreted
	TokenKey          string         // External credential re-verified on every renewal
	BU                string         // Business unit, normalized uppercase
	CreatedAt         int64          // Milliseconds since epoch
	UpdatedAt         int64          // Milliseconds since epoch, >= CreatedAt
	RequestIDHeader   string         // Propagated correlation id, may be empty
	Payload           map[string]any // Opaque caller payload, passed through unchanged
}

// ChatUsername derives the deterministic login name for a business unit and
// customer id. It is the only identity the store knows about.
func ChatUsername(bu, cif string) string {
	return fmt.Sprintf("%s-%s-%s", usernameNamespace, bu, cif)
}

// Key returns the storage key for a chat username.
func Key(chatUsername string) string {
	return KeyPrefix + chatUsername
}

// sessionDataWire is the stored JSON form.
type sessionDataWire struct {
	CIF               string         `json:"cif"`
	ChatUsername      string         `json:"chatUsername"`
	BasicCustomerInfo map[string]any `json:"basicCustomerInfo,omitempty"`
	TokenKey          string         `json:"tokenKey"`
	BU                string         `json:"bu"`
	CreatedAt         int64          `json:"createdAt"`
	UpdatedAt         int64          `json:"updatedAt"`
	RequestIDHeader   string         `json:"requestIdHeader,omitempty"`
	Payload           map[string]any `json:"payload,omitempty"`
}

// sessionDataWireLegacy is the snake_case form written by earlier releases.
// Records in this form must remain readable.
type sessionDataWireLegacy struct {
	CIF               string         `json:"cif"`
	ChatUsername      string         `json:"chat_username"`
	BasicCustomerInfo map[string]any `json:"basic_customer_info"`
	TokenKey          string         `json:"token_key"`
	BU                string         `json:"bu"`
	CreatedAt         int64          `json:"created_at"`
	UpdatedAt         int64          `json:"updated_at"`
	RequestIDHeader   string         `json:"request_id_header"`
	Payload           map[string]any `json:"payload"`
}

// Marshal serializes a session record into its wire form.
func (s *SessionData) Marshal() ([]byte, error) {
	w := sessionDataWire(*s)
	b, err := json.Marshal(&w)
	if err != nil {
		return nil, errors.Wrap(err, "[SessionData.Marshal] json.Marshal")
	}
	return b, nil
}

// Unmarshal decodes a stored record, accepting both the current camelCase
// form and the legacy snake_case form. Fields absent in the camelCase form
// are retried against the legacy keys.
func Unmarshal(data []byte) (*SessionData, error) {
	var w sessionDataWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "[sessions.Unmarshal] json.Unmarshal")
	}

	s := SessionData(w)

	if s.ChatUsername == "" || s.TokenKey == "" || s.CreatedAt == 0 {
		var legacy sessionDataWireLegacy
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, errors.Wrap(err, "[sessions.Unmarshal] legacy form")
		}
		if s.ChatUsername == "" {
			s.ChatUsername = legacy.ChatUsername
		}
		if s.TokenKey == "" {
			s.TokenKey = legacy.TokenKey
		}
		if s.BasicCustomerInfo == nil {
			s.BasicCustomerInfo = legacy.BasicCustomerInfo
		}
		if s.CreatedAt == 0 {
			s.CreatedAt = legacy.CreatedAt
		}
		if s.UpdatedAt == 0 {
			s.UpdatedAt = legacy.UpdatedAt
		}
		if s.RequestIDHeader == "" {
			s.RequestIDHeader = legacy.RequestIDHeader
		}
		if s.Payload == nil {
			s.Payload = legacy.Payload
		}
	}

	return &s, nil
}
