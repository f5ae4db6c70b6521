package signed

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrInvalid = errors.New("invalid signed value")

// Encode returns base64url(json(v)) + "." + base64url(hmac-sha256).
// The output only uses cookie-safe characters.
func Encode(secret []byte, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(secret, payload), nil
}

// Decode verifies s and unmarshals its payload into dst.
func Decode(secret []byte, s string, dst any) error {
	payload, sig, ok := strings.Cut(s, ".")
	if !ok || payload == "" || !hmac.Equal([]byte(sign(secret, payload)), []byte(sig)) {
		return ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return ErrInvalid
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return ErrInvalid
	}
	return nil
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
