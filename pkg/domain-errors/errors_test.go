package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	t.Run("CodeOf returns outermost code", func(t *testing.T) {
		inner := New(CodeConflict, "duplicate")
		outer := Wrap(inner, CodeMintFailed, "mint rejected")
		assert.Equal(t, CodeMintFailed, CodeOf(outer))
	})

	t.Run("CodeOf defaults to internal for plain errors", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})

	t.Run("HasCode walks the whole chain", func(t *testing.T) {
		inner := New(CodeConflict, "duplicate")
		outer := Wrap(fmt.Errorf("ledger: %w", inner), CodeMintFailed, "mint rejected")
		assert.True(t, HasCode(outer, CodeMintFailed))
		assert.True(t, HasCode(outer, CodeConflict))
		assert.False(t, HasCode(outer, CodeNotFound))
	})

	t.Run("Is only looks at the outermost domain error", func(t *testing.T) {
		inner := New(CodeConflict, "duplicate")
		outer := Wrap(inner, CodeMintFailed, "mint rejected")
		assert.True(t, Is(outer, CodeMintFailed))
		assert.False(t, Is(outer, CodeConflict))
	})

	t.Run("sentinel values survive wrapping", func(t *testing.T) {
		sentinel := New(CodeTransferDisabled, "soulbound")
		wrapped := fmt.Errorf("transfer: %w", sentinel)
		assert.ErrorIs(t, wrapped, sentinel)
	})

	t.Run("message includes cause", func(t *testing.T) {
		err := Wrap(errors.New("disk full"), CodeInternal, "append failed")
		assert.Equal(t, "append failed: disk full", err.Error())
	})
}
