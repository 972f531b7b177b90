package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName_Valid(t *testing.T) {
	p := &Project{Name: "Pilot episode"}
	assert.NoError(t, p.ValidateName())
}

func TestValidateName_Blank(t *testing.T) {
	p := &Project{Name: "   "}
	err := p.ValidateName()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "required")
}

func TestValidateName_TooLong(t *testing.T) {
	p := &Project{Name: strings.Repeat("я", MaxProjectNameLen+1)}
	err := p.ValidateName()
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	p.Name = strings.Repeat("я", MaxProjectNameLen)
	assert.NoError(t, p.ValidateName())
}

func TestDisplayID(t *testing.T) {
	assert.Equal(t, "550e8400", (&Project{ID: "550e8400-e29b-41d4-a716-446655440000"}).DisplayID())
	assert.Equal(t, "abc", (&Project{ID: "abc"}).DisplayID())
}

func TestFrameDuration(t *testing.T) {
	assert.Equal(t, 13, (&Frame{StartTime: 4, EndTime: 17}).Duration())
	assert.Equal(t, 0, (&Frame{StartTime: 5, EndTime: 5}).Duration())
	assert.Equal(t, 0, (&Frame{StartTime: 9, EndTime: 3}).Duration())
}

func TestFrameValidateTimes(t *testing.T) {
	assert.NoError(t, (&Frame{StartTime: 0, EndTime: 0}).ValidateTimes())
	assert.NoError(t, (&Frame{StartTime: 3, EndTime: 10}).ValidateTimes())
	assert.True(t, IsValidation((&Frame{StartTime: -1, EndTime: 10}).ValidateTimes()))
	assert.True(t, IsValidation((&Frame{StartTime: 10, EndTime: 3}).ValidateTimes()))
}

func TestFrameIsConnected(t *testing.T) {
	empty := ""
	page := "page-1"
	assert.False(t, (&Frame{}).IsConnected())
	assert.False(t, (&Frame{ConnectedPage: &empty}).IsConnected())
	assert.True(t, (&Frame{ConnectedPage: &page}).IsConnected())
}

func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("disk I/O error: /var/lib/db")
	err := Internal("reorder frame", cause)

	assert.Equal(t, "reorder frame: internal error", err.Error())
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
}

func TestInternal_PassesThroughKnownErrors(t *testing.T) {
	notFound := fmt.Errorf("frame: %w", ErrNotFound)
	assert.Same(t, notFound, Internal("op", notFound))

	conflict := fmt.Errorf("frame number: %w", ErrConflict)
	assert.Same(t, conflict, Internal("op", conflict))

	validation := NewValidationError("bad")
	assert.Same(t, validation, Internal("op", validation))

	assert.NoError(t, Internal("op", nil))
}
