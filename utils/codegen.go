package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const codeDigits = "0123456789"

// randomDigits returns n decimal digits. Uses crypto/rand with big.Int to
// avoid modulo bias.
func randomDigits(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	max := big.NewInt(int64(len(codeDigits)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeDigits[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateCode builds a human-readable entity code:
// {PREFIX}-{base36 millisecond timestamp, uppercase}-{4 random digits},
// e.g. "CT-LXK2M9QA-4821".
func GenerateCode(prefix string) (string, error) {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix, err := randomDigits(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(strings.TrimSpace(prefix)), ts, suffix), nil
}

// EnsureUniqueCode regenerates the random suffix up to 5 times on collision.
// If the final attempt still collides it appends one extra random digit to
// the last candidate instead of looping further.
func EnsureUniqueCode(prefix string, exists func(code string) (bool, error)) (string, error) {
	const maxAttempts = 5

	var last string
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := GenerateCode(prefix)
		if err != nil {
			return "", err
		}
		taken, err := exists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if !taken {
			return code, nil
		}
		last = code
	}

	extra, err := randomDigits(1)
	if err != nil {
		return "", err
	}
	return last + extra, nil
}
