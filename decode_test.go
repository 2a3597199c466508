// FILE: lixenwraith/appconfig/decode_test.go
package appconfig

import (
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scanTarget struct {
	Host     string        `toml:"host"`
	Port     int           `toml:"port"`
	Enabled  bool          `toml:"enabled"`
	Timeout  time.Duration `toml:"timeout"`
	Started  time.Time     `toml:"started"`
	Bind     net.IP        `toml:"bind"`
	Network  *net.IPNet    `toml:"network"`
	Endpoint *url.URL      `toml:"endpoint"`
	Tags     []string      `toml:"tags"`
	Fallback string        `toml:"fallback"`
}

// TestScan tests struct decoding with type conversion hooks
func TestScan(t *testing.T) {
	names := []string{
		"server.host", "server.port", "server.enabled", "server.timeout", "server.started",
		"server.bind", "server.network", "server.endpoint", "server.tags", "server.fallback",
	}
	setup := func(c *Container) error {
		for _, name := range names {
			if err := c.Parameter(name); err != nil {
				return err
			}
		}
		return nil
	}

	t.Run("StringConversions", func(t *testing.T) {
		c := readied(t, setup)
		values := map[string]any{
			"server.host":     "example.com",
			"server.port":     "8080",
			"server.enabled":  "true",
			"server.timeout":  "30s",
			"server.started":  "2024-01-02T03:04:05Z",
			"server.bind":     "10.0.0.1",
			"server.network":  "192.168.0.0/16",
			"server.endpoint": "https://api.example.com/v1",
			"server.tags":     "a,b,c",
		}
		for name, value := range values {
			require.NoError(t, c.Set(name, value))
		}

		target := scanTarget{Fallback: "kept"}
		require.NoError(t, c.Scan("server", &target))

		assert.Equal(t, "example.com", target.Host)
		assert.Equal(t, 8080, target.Port)
		assert.True(t, target.Enabled)
		assert.Equal(t, 30*time.Second, target.Timeout)
		assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), target.Started.UTC())
		assert.Equal(t, "10.0.0.1", target.Bind.String())
		require.NotNil(t, target.Network)
		assert.Equal(t, "192.168.0.0/16", target.Network.String())
		require.NotNil(t, target.Endpoint)
		assert.Equal(t, "api.example.com", target.Endpoint.Host)
		assert.Equal(t, []string{"a", "b", "c"}, target.Tags)
		// Nil parameters leave existing field values
		assert.Equal(t, "kept", target.Fallback)
	})

	t.Run("NativeValues", func(t *testing.T) {
		c := readied(t, setup)
		require.NoError(t, c.Set("server.port", int64(9000)))
		require.NoError(t, c.Set("server.tags", []any{"x", "y"}))

		var target scanTarget
		require.NoError(t, c.Scan("server", &target))
		assert.Equal(t, 9000, target.Port)
		assert.Equal(t, []string{"x", "y"}, target.Tags)
	})

	t.Run("WholeTreeIntoMap", func(t *testing.T) {
		c := readied(t, setup)
		require.NoError(t, c.Set("server.host", "h"))

		var target map[string]any
		require.NoError(t, c.Scan("", &target))
		assert.Equal(t, map[string]any{"server": map[string]any{"host": "h"}}, target)
	})

	t.Run("Gated", func(t *testing.T) {
		c, err := Configure(setup)
		require.NoError(t, err)
		var target scanTarget
		assert.ErrorIs(t, c.Scan("server", &target), ErrReadNotAvailable)
	})

	t.Run("InvalidTarget", func(t *testing.T) {
		c := readied(t, setup)
		var target scanTarget
		assert.Error(t, c.Scan("server", target))
		assert.Error(t, c.Scan("server", (*scanTarget)(nil)))
	})

	t.Run("PrefixIsLeaf", func(t *testing.T) {
		c := readied(t, setup)
		require.NoError(t, c.Set("server.host", "h"))
		var target scanTarget
		err := c.Scan("server.host", &target)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-table")
	})

	t.Run("BadDuration", func(t *testing.T) {
		c := readied(t, setup)
		require.NoError(t, c.Set("server.timeout", "soon"))
		var target scanTarget
		assert.Error(t, c.Scan("server", &target))
	})
}
