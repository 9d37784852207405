// Package basicauth decodes and encodes HTTP Basic Authentication credentials.
package basicauth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Scheme is the literal prefix every Basic authorization value starts with.
const Scheme = "Basic "

// HeaderName is the request header carrying the credentials.
const HeaderName = "Authorization"

var (
	// ErrAuthenticationFailed is the umbrella error for every credential failure.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrMalformedHeader is returned when the header value cannot be decoded.
	ErrMalformedHeader = fmt.Errorf("%w: malformed basic authorization header", ErrAuthenticationFailed)
)

// Decode splits a Basic authorization value into identifier and secret.
// The payload is split on the first colon only; without a colon the whole
// payload is the identifier and the secret is empty.
func Decode(headerValue string) (identifier, secret string, err error) {
	if !strings.HasPrefix(headerValue, Scheme) {
		return "", "", fmt.Errorf("%w: missing %q prefix", ErrMalformedHeader, strings.TrimSpace(Scheme))
	}

	raw, err := base64.StdEncoding.DecodeString(headerValue[len(Scheme):])
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	if !utf8.Valid(raw) {
		return "", "", fmt.Errorf("%w: payload is not valid UTF-8", ErrMalformedHeader)
	}

	identifier, secret, _ = strings.Cut(string(raw), ":")
	return identifier, secret, nil
}

// Encode builds a Basic authorization value for the given credentials.
func Encode(identifier, secret string) string {
	return Scheme + base64.StdEncoding.EncodeToString([]byte(identifier+":"+secret))
}
