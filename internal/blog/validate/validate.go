// Package validate holds the pure field validators shared by the account
// and post flows. Every function is deterministic and side-effect free so
// each rule can be unit tested on its own.
package validate

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
)

var (
	ErrUsernameFormat  = errors.New("validate: username must be 3-150 characters of letters, digits, '._-' and start with a letter or digit")
	ErrEmailFormat     = errors.New("validate: not a valid email address")
	ErrWeakPassword    = errors.New("validate: password must be at least 8 characters and mix at least three of: upper, lower, digit, symbol")
	ErrTitleTooShort   = errors.New("validate: title must be at least 5 characters long")
	ErrContentTooShort = errors.New("validate: content must be at least 10 characters long")
)

const (
	usernameMinLen = 3
	usernameMaxLen = 150
	passwordMinLen = 8
	titleMinLen    = 5
	contentMinLen  = 10
)

// Username checks the account name shape: 3-150 chars of ASCII letters,
// digits, underscore, dot and hyphen, starting with a letter or digit.
func Username(v string) error {
	if len(v) < usernameMinLen || len(v) > usernameMaxLen {
		return ErrUsernameFormat
	}

	for i, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '.' || r == '-':
			if i == 0 {
				return ErrUsernameFormat
			}
		default:
			return ErrUsernameFormat
		}
	}

	return nil
}

// Email checks the address is syntactically valid and has no display name.
func Email(v string) error {
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return ErrEmailFormat
	}

	// mail.ParseAddress accepts local-only addresses; require a dot in the
	// domain so "user@localhost" style values are rejected.
	at := strings.LastIndex(v, "@")
	if at < 0 || !strings.Contains(v[at+1:], ".") {
		return ErrEmailFormat
	}

	return nil
}

// StrongPassword enforces the strength policy: minimum length and at least
// three of the four character classes.
func StrongPassword(v string) error {
	if len(v) < passwordMinLen {
		return ErrWeakPassword
	}

	var upper, lower, digit, symbol bool
	for _, r := range v {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	classes := 0
	for _, ok := range []bool{upper, lower, digit, symbol} {
		if ok {
			classes++
		}
	}
	if classes < 3 {
		return ErrWeakPassword
	}

	return nil
}

// PostTitle checks the trimmed title length.
func PostTitle(v string) error {
	if len(strings.TrimSpace(v)) < titleMinLen {
		return ErrTitleTooShort
	}
	return nil
}

// PostContent checks the trimmed content length.
func PostContent(v string) error {
	if len(strings.TrimSpace(v)) < contentMinLen {
		return ErrContentTooShort
	}
	return nil
}
