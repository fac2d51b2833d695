package dto

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate enforces the credential shape: username 3-50 chars with no
// whitespace, password at least 6 chars. Usernames are case-sensitive and
// kept verbatim.
func (r RegisterRequest) Validate() error {
	if r.Username == "" {
		return errors.New("username is required")
	}
	// Character count, not byte count: Cyrillic usernames are two bytes
	// per character.
	if n := utf8.RuneCountInString(r.Username); n < 3 || n > 50 {
		return errors.New("username must be 3-50 characters")
	}
	if strings.IndexFunc(r.Username, unicode.IsSpace) >= 0 {
		return errors.New("username must not contain whitespace")
	}
	if utf8.RuneCountInString(r.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
