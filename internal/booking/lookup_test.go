package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

func TestLookupNormalizesInputs(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusConfirmed)

	// Code is stored uppercase, email lowercase; the guest may type
	// either in any case with stray whitespace.
	found, bErr := e.Lookup(context.Background(), 1, "  abcd23 ", " Robin@Example.COM ")
	require.Nil(t, bErr)
	assert.Equal(t, r.ID, found.ID)
}

func TestLookupRequiresBothFields(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, bErr := e.Lookup(ctx, 1, "", "robin@example.com")
	require.NotNil(t, bErr)
	assert.Equal(t, KindValidation, bErr.Kind)

	_, bErr = e.Lookup(ctx, 1, "ABCD23", "")
	require.NotNil(t, bErr)
	assert.Equal(t, KindValidation, bErr.Kind)
}

func TestLookupGenericMiss(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	seedBooking(e, ms, table.ID, model.StatusConfirmed)
	ctx := context.Background()

	// Wrong code and wrong email produce the exact same message, so a
	// caller can't tell which half matched.
	_, codeErr := e.Lookup(ctx, 1, "ZZZZ99", "robin@example.com")
	require.NotNil(t, codeErr)
	assert.Equal(t, KindNotFound, codeErr.Kind)

	_, emailErr := e.Lookup(ctx, 1, "ABCD23", "stranger@example.com")
	require.NotNil(t, emailErr)
	assert.Equal(t, KindNotFound, emailErr.Kind)
	assert.Equal(t, codeErr.Message, emailErr.Message)

	// The right code at the wrong venue is a miss too.
	_, bErr := e.Lookup(ctx, 2, "ABCD23", "robin@example.com")
	require.NotNil(t, bErr)
	assert.Equal(t, KindNotFound, bErr.Kind)
}

func TestLookupThrottlesRepeatedAttempts(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	seedBooking(e, ms, table.ID, model.StatusConfirmed)
	attempts := newMemAttempts()
	e.Attempts = attempts
	ctx := context.Background()

	for i := 0; i < e.cfg.LookupAttempts; i++ {
		_, bErr := e.Lookup(ctx, 1, "ABCD23", "robin@example.com")
		require.Nil(t, bErr)
	}
	_, bErr := e.Lookup(ctx, 1, "ABCD23", "robin@example.com")
	require.NotNil(t, bErr)
	assert.Equal(t, KindTooEarly, bErr.Kind)

	// The budget is per normalized email; another guest is unaffected,
	// and casing variants share the same counter.
	_, bErr = e.Lookup(ctx, 1, "ABCD23", "other@example.com")
	require.NotNil(t, bErr)
	assert.Equal(t, KindNotFound, bErr.Kind)
	assert.Equal(t, e.cfg.LookupAttempts+1, attempts.counts["lookup:1:robin@example.com"])
}

func TestLookupFailsOpenWhenCounterDown(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusConfirmed)
	attempts := newMemAttempts()
	attempts.err = errors.New("counter unavailable")
	e.Attempts = attempts

	found, bErr := e.Lookup(context.Background(), 1, "ABCD23", "robin@example.com")
	require.Nil(t, bErr)
	assert.Equal(t, r.ID, found.ID)
}

func TestLookupWithoutAttemptStore(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusConfirmed)

	// No attempt store wired: the gate is simply skipped.
	for i := 0; i < e.cfg.LookupAttempts+5; i++ {
		found, bErr := e.Lookup(context.Background(), 1, "ABCD23", "robin@example.com")
		require.Nil(t, bErr)
		assert.Equal(t, r.ID, found.ID)
	}
}
