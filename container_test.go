// FILE: lixenwraith/appconfig/container_test.go
package appconfig

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readied builds a container that already passed Ready with the given parameters declared
func readied(t *testing.T, setup SetupFunc) *Container {
	t.Helper()
	c, err := Configure(setup)
	require.NoError(t, err)
	require.NoError(t, c.Ready())
	return c
}

// TestParameterDeclaration tests that any unique string is a name and duplicates fail
func TestParameterDeclaration(t *testing.T) {
	tests := []struct {
		name  string
		param string
	}{
		{"SimpleName", "fooz"},
		{"DottedName", "server.host.name"},
		{"UnderscoreAndDash", "feature-flags.max_conns"},
		{"Empty", ""},
		{"Punctuation", "server.port!"},
		{"DoubleDot", "server..port"},
		{"LeadingDot", ".server"},
		{"TrailingDot", "server."},
		{"Spaces", "my dog's name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			require.NoError(t, c.Parameter(tt.param))
			assert.True(t, c.IsDeclared(tt.param))
			assert.ErrorIs(t, c.Parameter(tt.param), ErrDuplicateParameter)

			require.NoError(t, c.Set(tt.param, "v"))
			require.NoError(t, c.Ready())
			val, err := c.Get(tt.param)
			require.NoError(t, err)
			assert.Equal(t, "v", val)
		})
	}

	t.Run("DuplicateIgnoresOptions", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Parameter("fooz"))
		assert.ErrorIs(t, c.Parameter("fooz"), ErrDuplicateParameter)
		assert.ErrorIs(t, c.Parameter("fooz", Required(), Lock(LockOnSet)), ErrDuplicateParameter)

		// First declaration wins
		assert.False(t, c.IsRequired("fooz"))
		lock, ok := c.LockOf("fooz")
		assert.True(t, ok)
		assert.Equal(t, LockNone, lock)
	})

	t.Run("RegistrationOrder", func(t *testing.T) {
		c := New()
		for _, name := range []string{"zeta", "alpha", "mid.value"} {
			require.NoError(t, c.Parameter(name))
		}
		assert.Equal(t, []string{"zeta", "alpha", "mid.value"}, c.Names())
	})

	t.Run("Options", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Parameter("a", Required()))
		require.NoError(t, c.Parameter("b", WithRequired(false), Lock(LockOnSet)))

		assert.True(t, c.IsRequired("a"))
		assert.False(t, c.IsRequired("b"))
		lock, _ := c.LockOf("b")
		assert.Equal(t, LockOnSet, lock)
		_, ok := c.LockOf("undeclared")
		assert.False(t, ok)
	})

	t.Run("UniqueIDs", func(t *testing.T) {
		assert.NotEqual(t, New().ID(), New().ID())
		assert.NotEmpty(t, New().ID())
	})
}

// TestLockPolicies tests write rejection by lock policy
func TestLockPolicies(t *testing.T) {
	t.Run("NoneAllowsRewrites", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Parameter("p"))
		for i := 0; i < 3; i++ {
			require.NoError(t, c.Set("p", i))
		}
		assert.True(t, c.IsSet("p"))
	})

	t.Run("OnSetAllowsOneWrite", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Parameter("fooz", Lock(LockOnSet)))
		require.NoError(t, c.Set("fooz", true))
		assert.ErrorIs(t, c.Set("fooz", false), ErrLockedParameter)

		require.NoError(t, c.Ready())
		val, err := c.Get("fooz")
		require.NoError(t, err)
		assert.Equal(t, true, val)
	})

	t.Run("OnSetCountsNilWrite", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Parameter("p", Lock(LockOnSet)))
		require.NoError(t, c.Set("p", nil))
		assert.True(t, c.IsSet("p"))
		assert.ErrorIs(t, c.Set("p", "later"), ErrLockedParameter)
	})

	t.Run("InvalidLockRejectsEveryWrite", func(t *testing.T) {
		c := New()
		// Accepted at declaration, rejected at write
		require.NoError(t, c.Parameter("p", Lock("forever")))
		err := c.Set("p", 1)
		assert.ErrorIs(t, err, ErrInvalidLockOption)
		assert.ErrorIs(t, c.Set("p", nil), ErrInvalidLockOption)
		assert.False(t, c.IsSet("p"))
	})

	t.Run("UndeclaredWrite", func(t *testing.T) {
		c := New()
		assert.ErrorIs(t, c.Set("ghost", 1), ErrParameterNotDeclared)
	})

	t.Run("PolicyHelpers", func(t *testing.T) {
		assert.True(t, LockNone.Valid())
		assert.True(t, LockOnSet.Valid())
		assert.False(t, LockPolicy("forever").Valid())
		assert.Equal(t, "none", LockNone.String())
		assert.Equal(t, "on_set", LockOnSet.String())
	})
}

// TestReadGate tests when Get is permitted
func TestReadGate(t *testing.T) {
	t.Run("FreshContainer", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Parameter("fooz"))
		require.NoError(t, c.Set("fooz", "x"))

		_, err := c.Get("fooz")
		assert.ErrorIs(t, err, ErrReadNotAvailable)
		assert.False(t, c.Readable())
	})

	t.Run("UndeclaredReportedFirst", func(t *testing.T) {
		c := New()
		_, err := c.Get("ghost")
		assert.ErrorIs(t, err, ErrParameterNotDeclared)
	})

	t.Run("DuringSetup", func(t *testing.T) {
		var got any
		var getErr error
		c, err := Configure(func(c *Container) error {
			assert.True(t, c.Configuring())
			if err := c.Parameter("fooz"); err != nil {
				return err
			}
			if err := c.Set("fooz", 42); err != nil {
				return err
			}
			got, getErr = c.Get("fooz")
			return nil
		})
		require.NoError(t, err)
		require.NoError(t, getErr)
		assert.Equal(t, 42, got)

		// Configuring ends with setup
		assert.False(t, c.Configuring())
		_, err = c.Get("fooz")
		assert.ErrorIs(t, err, ErrReadNotAvailable)
	})

	t.Run("NilIsReadableAfterReady", func(t *testing.T) {
		c := readied(t, func(c *Container) error { return c.Parameter("optional") })
		val, err := c.Get("optional")
		require.NoError(t, err)
		assert.Nil(t, val)
	})

	t.Run("WritesNeverGated", func(t *testing.T) {
		c := readied(t, func(c *Container) error { return c.Parameter("p") })
		require.NoError(t, c.Set("p", "after-ready"))
		val, err := c.Get("p")
		require.NoError(t, err)
		assert.Equal(t, "after-ready", val)
	})
}

// TestConcurrentAccess tests parallel reads and writes on a readied container
func TestConcurrentAccess(t *testing.T) {
	c := readied(t, func(c *Container) error {
		for i := 0; i < 10; i++ {
			if err := c.Parameter(fmt.Sprintf("p%d", i)); err != nil {
				return err
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				name := fmt.Sprintf("p%d", i%10)
				assert.NoError(t, c.Set(name, g*i))
				_, err := c.Get(name)
				assert.NoError(t, err)
			}
		}(g)
	}
	wg.Wait()

	assert.Len(t, c.Names(), 10)
}
