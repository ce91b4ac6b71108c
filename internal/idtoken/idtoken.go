// Package idtoken implements the reversible codec between internal
// identifiers and the opaque tokens embedded in URLs and API payloads.
// Tokens are URL-safe base64 of the identifier; they hide raw database
// ids from casual inspection but provide no confidentiality.
package idtoken

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidToken is returned by Decode for empty or malformed tokens.
var ErrInvalidToken = errors.New("invalid id token")

// Encode returns the external token for an internal identifier.
// It is deterministic and total over any input, including Unicode.
func Encode(id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}

// Decode recovers the internal identifier from an external token.
// It is the exact inverse of Encode.
func Decode(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: empty token", ErrInvalidToken)
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return string(raw), nil
}

// EncodeUint encodes a numeric identifier as its decimal string.
func EncodeUint(id uint) string {
	return Encode(strconv.FormatUint(uint64(id), 10))
}

// DecodeUint decodes a token that must carry a positive numeric identifier.
func DecodeUint(token string) (uint, error) {
	s, err := Decode(token)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: not a numeric id", ErrInvalidToken)
	}
	return uint(n), nil
}
