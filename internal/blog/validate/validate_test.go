package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	t.Parallel()

	t.Run("accepts typical names", func(t *testing.T) {
		for _, v := range []string{"bob", "test_user", "a1.b2-c3", "User99", strings.Repeat("x", 150)} {
			require.NoError(t, Username(v), "username: %q", v)
		}
	})

	t.Run("rejects bad shapes", func(t *testing.T) {
		for _, v := range []string{
			"",
			"ab",                         // too short
			strings.Repeat("x", 151),     // too long
			"_leading",                   // punctuation first
			".hidden",                    //
			"has space",                  //
			"naïve",                      // non-ASCII
			"semi;colon",                 //
		} {
			require.ErrorIs(t, Username(v), ErrUsernameFormat, "username: %q", v)
		}
	})
}

func TestEmail(t *testing.T) {
	t.Parallel()

	t.Run("accepts plain addresses", func(t *testing.T) {
		for _, v := range []string{"test@example.com", "a.b+tag@sub.example.org"} {
			require.NoError(t, Email(v), "email: %q", v)
		}
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, v := range []string{
			"",
			"plainstring",
			"@example.com",
			"user@",
			"user@localhost",
			"Display Name <user@example.com>",
			"two@@example.com",
		} {
			require.ErrorIs(t, Email(v), ErrEmailFormat, "email: %q", v)
		}
	})
}

func TestStrongPassword(t *testing.T) {
	t.Parallel()

	t.Run("accepts strong passwords", func(t *testing.T) {
		for _, v := range []string{"SecurePass123!", "Abcdef12", "sup3r-l0ng-passphrase"} {
			require.NoError(t, StrongPassword(v), "password: %q", v)
		}
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		for _, v := range []string{
			"",
			"Ab1!",           // too short
			"alllowercase",   // one class
			"password123",    // two classes
			"PASSWORD123",    // two classes
		} {
			require.ErrorIs(t, StrongPassword(v), ErrWeakPassword, "password: %q", v)
		}
	})
}

func TestPostTitleAndContent(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, PostTitle("Hi"), ErrTitleTooShort)
	require.ErrorIs(t, PostTitle("   Hi    "), ErrTitleTooShort)
	require.NoError(t, PostTitle("Hello World"))

	require.ErrorIs(t, PostContent("too short"), ErrContentTooShort)
	require.NoError(t, PostContent("This is long enough content."))
}
