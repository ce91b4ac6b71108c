// Package models contains data structures for the application's domain models.
package models

import (
	"encoding/json"

	"pulse/internal/idtoken"
)

// PublicID is a database identifier that marshals to its opaque id-token
// form in JSON so raw numeric ids never appear in API payloads.
type PublicID uint

// MarshalJSON renders the identifier as an id token.
func (id PublicID) MarshalJSON() ([]byte, error) {
	return json.Marshal(idtoken.EncodeUint(uint(id)))
}

// UnmarshalJSON accepts an id token and decodes it back to the numeric id.
func (id *PublicID) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}
	n, err := idtoken.DecodeUint(token)
	if err != nil {
		return err
	}
	*id = PublicID(n)
	return nil
}
