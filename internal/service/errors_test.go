package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	wrapped := fmt.Errorf("enroll: %w", errAlreadyEnrolled)

	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.NotErrorIs(t, wrapped, ErrNotFound)
	assert.ErrorIs(t, errProctorMissing("p1"), ErrNotFound)
	assert.EqualError(t, errProctorMissing("p1"), "Proctor with ID p1 not found")
	assert.False(t, errors.Is(errors.New("plain"), ErrConflict))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
