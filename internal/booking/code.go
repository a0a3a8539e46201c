package booking

import (
	"context"
	"crypto/rand"
	"fmt"
)

// codeAlphabet excludes visually confusable characters (0/O, 1/I/L) so
// codes survive being read over the phone or scribbled on a receipt.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// codeLength is the fixed length of every confirmation code.
const codeLength = 6

// generateCode draws a confirmation code from the restricted alphabet
// using crypto/rand.
func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	out := make([]byte, codeLength)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}

// newConfirmationCode generates a code and regenerates up to the
// configured bound when the code is already taken.  A collision past
// the bound is statistically negligible and accepted as-is: the unique
// index on the code column remains the true backstop, and the insert
// path already retries on a duplicate-key rejection.
func (e *Engine) newConfirmationCode(ctx context.Context) (string, error) {
	var code string
	for i := 0; i < e.cfg.CodeAttempts; i++ {
		c, err := generateCode()
		if err != nil {
			return "", err
		}
		code = c
		taken, err := e.Reservations.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return code, nil
}
