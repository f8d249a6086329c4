package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorIs(t *testing.T) {
	t.Run("matches by code across instances", func(t *testing.T) {
		err := NewDomainError("CONCURRENCY_CONFLICT", "item WIDGET-1 version changed")
		assert.ErrorIs(t, err, ErrConcurrencyConflict)
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("posting goods receipt: %w", ErrInsufficientStock)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.False(t, errors.Is(err, ErrInsufficientLayers))
	})

	t.Run("does not match plain errors", func(t *testing.T) {
		assert.False(t, errors.Is(errors.New("NOT_FOUND"), ErrNotFound))
	})

	t.Run("extractable with errors.As", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", ErrUnbalancedJournal)
		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNBALANCED_JOURNAL", domainErr.Code)
	})
}
