package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	t.Run("Happy path - known roles", func(t *testing.T) {
		for _, name := range []string{"User", "ExCom", "Admin"} {
			role, err := ParseRole(name)
			assert.NoError(t, err)
			assert.Equal(t, Role(name), role)
		}
	})

	t.Run("Unhappy path - unknown role", func(t *testing.T) {
		_, err := ParseRole("Manager")
		assert.Error(t, err)
	})

	t.Run("Unhappy path - case sensitive", func(t *testing.T) {
		_, err := ParseRole("admin")
		assert.Error(t, err)
	})
}

func TestCapabilitiesFor(t *testing.T) {
	t.Run("member can only nominate", func(t *testing.T) {
		caps := CapabilitiesFor([]string{"User"})
		assert.True(t, caps.CanNominate)
		assert.False(t, caps.CanValidate)
		assert.False(t, caps.CanAdminister)
	})

	t.Run("approver can nominate and validate", func(t *testing.T) {
		caps := CapabilitiesFor([]string{"ExCom"})
		assert.True(t, caps.CanNominate)
		assert.True(t, caps.CanValidate)
		assert.False(t, caps.CanAdminister)
	})

	t.Run("admin does not inherit validate", func(t *testing.T) {
		caps := CapabilitiesFor([]string{"Admin"})
		assert.True(t, caps.CanNominate)
		assert.False(t, caps.CanValidate)
		assert.True(t, caps.CanAdminister)
	})

	t.Run("roles are additive", func(t *testing.T) {
		caps := CapabilitiesFor([]string{"Admin", "ExCom"})
		assert.True(t, caps.CanNominate)
		assert.True(t, caps.CanValidate)
		assert.True(t, caps.CanAdminister)
	})

	t.Run("unknown roles fail closed", func(t *testing.T) {
		caps := CapabilitiesFor([]string{"Manager", ""})
		assert.False(t, caps.CanNominate)
		assert.False(t, caps.CanValidate)
		assert.False(t, caps.CanAdminister)
	})

	t.Run("empty role set has no capabilities", func(t *testing.T) {
		caps := CapabilitiesFor(nil)
		assert.Equal(t, Capabilities{}, caps)
	})
}
