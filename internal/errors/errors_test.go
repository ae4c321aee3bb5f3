package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "team"}
		assert.Equal(t, "team not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "team"}
		err2 := &NotFoundError{Entity: "team"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "team"}
		err2 := &NotFoundError{Entity: "post"}
		assert.False(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is with predefined errors", func(t *testing.T) {
		assert.True(t, errors.Is(ErrTeamNotFound, ErrTeamNotFound))
		assert.False(t, errors.Is(ErrTeamNotFound, ErrPostNotFound))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrTeamNotFound))
		assert.True(t, IsNotFound(ErrMembershipNotFound))
		assert.False(t, IsNotFound(ErrMembershipExists))
	})

	t.Run("IsNotFound through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("loading feed: %w", ErrPostNotFound)
		assert.True(t, IsNotFound(wrapped))
		assert.True(t, errors.Is(wrapped, ErrPostNotFound))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "team", Context: "with this name"}
		assert.Equal(t, "team already exists with this name", err.Error())
	})

	t.Run("Error message without context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "team"}
		assert.Equal(t, "team already exists", err.Error())
	})

	t.Run("errors.Is comparison", func(t *testing.T) {
		err1 := &AlreadyExistsError{Entity: "like", Context: "by this user"}
		err2 := &AlreadyExistsError{Entity: "like"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("IsAlreadyExists helper", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(ErrTeamExists))
		assert.True(t, IsAlreadyExists(ErrPostAttached))
		assert.False(t, IsAlreadyExists(ErrTeamNotFound))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Field: "email", Message: "invalid format"}
		assert.Equal(t, "validation error: email - invalid format", err.Error())
	})

	t.Run("Error message without field", func(t *testing.T) {
		err := &ValidationError{Message: "invalid format"}
		assert.Equal(t, "validation error: invalid format", err.Error())
	})

	t.Run("IsValidation helper", func(t *testing.T) {
		err := NewValidationError("email", "invalid")
		assert.True(t, IsValidation(err))
		assert.False(t, IsValidation(ErrTeamNotFound))
	})
}

func TestAuthErrors(t *testing.T) {
	t.Run("authentication and authorization stay distinct", func(t *testing.T) {
		assert.True(t, IsAuthentication(ErrInvalidCredentials))
		assert.False(t, IsAuthorization(ErrInvalidCredentials))

		forbidden := NewAuthorizationError("only a team owner can delete the team")
		assert.True(t, IsAuthorization(forbidden))
		assert.False(t, IsAuthentication(forbidden))
	})

	t.Run("token error message", func(t *testing.T) {
		assert.Equal(t, "invalid or expired token", ErrTokenInvalid.Error())
	})
}

func TestMembershipStateErrors(t *testing.T) {
	t.Run("plain sentinels match only themselves", func(t *testing.T) {
		assert.True(t, errors.Is(ErrNotAMember, ErrNotAMember))
		assert.False(t, errors.Is(ErrNotAMember, ErrNotAnAdmin))
		assert.False(t, IsNotFound(ErrNotAMember))
		assert.False(t, IsAlreadyExists(ErrNotLiked))
	})

	t.Run("post attachment sentinels", func(t *testing.T) {
		assert.False(t, errors.Is(ErrPostNotInTeam, ErrPostOwnedByTeam))
		wrapped := fmt.Errorf("attach: %w", ErrPostOwnedByTeam)
		assert.True(t, errors.Is(wrapped, ErrPostOwnedByTeam))
	})
}

func TestHelperFunctions(t *testing.T) {
	t.Run("NewNotFoundError", func(t *testing.T) {
		err := NewNotFoundError("invite")
		assert.Equal(t, "invite not found", err.Error())
		assert.True(t, IsNotFound(err))
	})

	t.Run("NewAlreadyExistsError", func(t *testing.T) {
		err := NewAlreadyExistsError("invite", "for this user")
		assert.Equal(t, "invite already exists for this user", err.Error())
		assert.True(t, IsAlreadyExists(err))
	})

	t.Run("NewAuthenticationError", func(t *testing.T) {
		err := NewAuthenticationError("missing bearer token")
		assert.True(t, IsAuthentication(err))
	})
}
