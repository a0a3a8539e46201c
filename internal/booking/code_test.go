package booking

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Len(t, code, codeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r),
				"code %q contains %q outside the alphabet", code, r)
		}
		seen[code] = true
	}
	// Collisions over 200 draws from a 31^6 space would indicate a
	// broken generator.
	assert.Greater(t, len(seen), 190)
}

func TestCodeAlphabetExcludesConfusables(t *testing.T) {
	for _, r := range "01OIL" {
		assert.False(t, strings.ContainsRune(codeAlphabet, r))
	}
}

func TestNewConfirmationCodeRegenerates(t *testing.T) {
	e, ms := newTestEngine(t)
	code, err := e.newConfirmationCode(context.Background())
	require.NoError(t, err)
	assert.Len(t, code, codeLength)

	// Occupy that code; the next call must return a different one.
	ms.reservations[999] = &model.Reservation{ID: 999, Code: code, Status: model.StatusConfirmed}
	next, err := e.newConfirmationCode(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, code, next)
}
