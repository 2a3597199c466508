// FILE: lixenwraith/appconfig/type_test.go
package appconfig

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTypedGetters tests conversions in String, Int64, Bool and Float64
func TestTypedGetters(t *testing.T) {
	c := readied(t, func(c *Container) error {
		for _, name := range []string{"s", "i", "u", "f", "b", "hex", "num", "dur", "nil", "bad", "big"} {
			if err := c.Parameter(name); err != nil {
				return err
			}
		}
		return nil
	})
	values := map[string]any{
		"s":   "42",
		"i":   int64(7),
		"u":   uint8(3),
		"f":   2.5,
		"b":   true,
		"hex": "0xFF",
		"num": json.Number("12.75"),
		"dur": 1500 * time.Millisecond,
		"bad": []int{1},
		"big": ^uint64(0),
	}
	for name, value := range values {
		require.NoError(t, c.Set(name, value))
	}

	t.Run("String", func(t *testing.T) {
		cases := map[string]string{"s": "42", "i": "7", "u": "3", "f": "2.5", "b": "true", "dur": "1.5s", "nil": ""}
		for name, want := range cases {
			got, err := c.String(name)
			require.NoError(t, err, name)
			assert.Equal(t, want, got, name)
		}
		_, err := c.String("bad")
		assert.Error(t, err)
	})

	t.Run("Int64", func(t *testing.T) {
		cases := map[string]int64{"s": 42, "i": 7, "u": 3, "f": 2, "b": 1, "hex": 255, "num": 12}
		for name, want := range cases {
			got, err := c.Int64(name)
			require.NoError(t, err, name)
			assert.Equal(t, want, got, name)
		}
		for _, name := range []string{"nil", "bad", "big"} {
			_, err := c.Int64(name)
			assert.Error(t, err, name)
		}
	})

	t.Run("Bool", func(t *testing.T) {
		got, err := c.Bool("b")
		require.NoError(t, err)
		assert.True(t, got)
		got, err = c.Bool("i")
		require.NoError(t, err)
		assert.True(t, got)
		_, err = c.Bool("s")
		assert.Error(t, err)
		_, err = c.Bool("nil")
		assert.Error(t, err)
	})

	t.Run("Float64", func(t *testing.T) {
		got, err := c.Float64("num")
		require.NoError(t, err)
		assert.Equal(t, 12.75, got)
		got, err = c.Float64("u")
		require.NoError(t, err)
		assert.Equal(t, 3.0, got)
		_, err = c.Float64("bad")
		assert.Error(t, err)
	})

	t.Run("Gated", func(t *testing.T) {
		fresh := New()
		require.NoError(t, fresh.Parameter("p"))
		_, err := fresh.String("p")
		assert.ErrorIs(t, err, ErrReadNotAvailable)
		_, err = fresh.Int64("p")
		assert.ErrorIs(t, err, ErrReadNotAvailable)
	})
}
