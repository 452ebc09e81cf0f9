package guard_test

import (
	"errors"
	"testing"

	"tracking/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("Recipient must be created via NewRecipient")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type recipient struct {
		name  string
		guard guard.ConstructorGuard
	}
	errRecipientNotConstructed := errors.New("recipient must be created via newRecipient")

	newRecipient := func(name string) (recipient, error) {
		if name == "" {
			return recipient{}, errors.New("name is required")
		}
		return recipient{name: name, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_sets_guard", func(t *testing.T) {
		r, err := newRecipient("Jane Doe")

		require.NoError(t, err)
		require.NoError(t, r.guard.Validate(errRecipientNotConstructed))
	})

	t.Run("copies_keep_the_guard", func(t *testing.T) {
		r, err := newRecipient("Jane Doe")
		require.NoError(t, err)

		cp := r

		require.NoError(t, cp.guard.Validate(errRecipientNotConstructed))
	})

	t.Run("literal_bypassing_constructor_fails", func(t *testing.T) {
		r := recipient{name: "Jane Doe"}

		require.ErrorIs(t, r.guard.Validate(errRecipientNotConstructed), errRecipientNotConstructed)
	})
}
