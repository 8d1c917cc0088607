package domain

import (
	"strconv"
	"strings"
	"unicode/utf8"

	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
)

const (
	primaryAddressLength = 36
	base58Alphabet       = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

// primaryAddressPrefixes lists the implicit (tz) and originated (KT1) account kinds.
var primaryAddressPrefixes = []string{"tz1", "tz2", "tz3", "tz4", "KT1"}

// PrimaryAddress identifies an account on the primary chain. It keys both the
// alias map and token ownership.
type PrimaryAddress string

// ParsePrimaryAddress validates the shape of a primary-chain address: a known
// prefix followed by base58 characters, 36 characters in total. The checksum is
// not verified.
func ParsePrimaryAddress(s string) (PrimaryAddress, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "primary address is required")
	}
	if len(s) != primaryAddressLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "primary address must be 36 characters")
	}
	if !hasPrimaryPrefix(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "primary address has an unknown prefix")
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(base58Alphabet, s[i]) < 0 {
			return "", dErrors.New(dErrors.CodeInvalidInput, "primary address contains invalid characters")
		}
	}
	return PrimaryAddress(s), nil
}

func hasPrimaryPrefix(s string) bool {
	for _, p := range primaryAddressPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func (a PrimaryAddress) String() string { return string(a) }

// IsZero reports whether the address is unset.
func (a PrimaryAddress) IsZero() bool { return a == "" }

// SecondaryAddress is a caller-declared address on the secondary chain. It is
// recorded as given: neither its format nor its ownership is checked.
type SecondaryAddress string

// ParseSecondaryAddress only rejects input that cannot be stored as text.
func ParseSecondaryAddress(s string) (SecondaryAddress, error) {
	if !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "secondary address must be valid UTF-8")
	}
	if strings.IndexByte(s, 0) >= 0 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "secondary address must not contain NUL")
	}
	return SecondaryAddress(s), nil
}

func (a SecondaryAddress) String() string { return string(a) }

// TokenID numbers receipt tokens in mint order, starting at 1.
type TokenID uint64

// ParseTokenID parses a decimal, non-zero token id.
func ParseTokenID(s string) (TokenID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "token id is required")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "token id must be a positive integer")
	}
	if n == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "token id must be a positive integer")
	}
	return TokenID(n), nil
}

func (id TokenID) String() string { return strconv.FormatUint(uint64(id), 10) }

// Next returns the id issued after id.
func (id TokenID) Next() TokenID { return id + 1 }
