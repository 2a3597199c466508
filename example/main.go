// FILE: lixenwraith/appconfig/example/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/appconfig"
)

// DogSettings is scanned from the readied configuration.
type DogSettings struct {
	Dog    string `toml:"doggyz" param:"required"`
	Poodle bool   `toml:"is_a_poodle"`
	Server struct {
		Port    int64         `toml:"port"`
		Timeout time.Duration `toml:"timeout"`
	} `toml:"server"`
}

func setup(c *appconfig.Container) error {
	if err := c.DeclareStruct("", (*DogSettings)(nil)); err != nil {
		return err
	}
	if err := c.Parameter("api_key", appconfig.Lock(appconfig.LockOnSet)); err != nil {
		return err
	}

	// Derive is_a_poodle, then react to it
	c.AfterValidation(func(c *appconfig.Container) error {
		dog, err := c.Get("doggyz")
		if err != nil {
			return err
		}
		return c.Set("is_a_poodle", dog == "poodle")
	})
	c.AfterValidation(func(c *appconfig.Container) error {
		poodle, err := c.Get("is_a_poodle")
		if err != nil {
			return err
		}
		if poodle == true {
			return c.Set("doggyz", "buy a new dog")
		}
		return nil
	})
	return nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	holder := appconfig.NewHolder(appconfig.WithLogger(logger))

	dir, err := os.MkdirTemp("", "appconfig-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	configPath := filepath.Join(dir, "config.toml")

	// Required value missing: Ready reports it by name
	if err := os.WriteFile(configPath, []byte("[server]\nport = 8080\ntimeout = \"5s\"\n"), 0644); err != nil {
		log.Fatal(err)
	}
	loader := appconfig.NewLoader().WithArgs(nil).WithFile(configPath).WithEnvPrefix("EXAMPLE_")
	if _, err := holder.Reload(context.Background(), setup, loader); err != nil {
		var missing *appconfig.MissingConfigurationError
		if errors.As(err, &missing) {
			log.Printf("not ready, missing: %v", missing.Names)
		}
	}

	// Supply it; callbacks derive is_a_poodle and rewrite doggyz
	if err := os.WriteFile(configPath, []byte("doggyz = \"poodle\"\n[server]\nport = 8080\ntimeout = \"5s\"\n"), 0644); err != nil {
		log.Fatal(err)
	}
	if _, err := holder.Reload(context.Background(), setup, loader); err != nil {
		log.Fatal(err)
	}

	var settings DogSettings
	if err := holder.Current().Scan("", &settings); err != nil {
		log.Fatal(err)
	}
	log.Printf("dog=%q poodle=%t port=%d timeout=%s",
		settings.Dog, settings.Poodle, settings.Server.Port, settings.Server.Timeout)

	// on_set accepts one write
	if err := holder.Set("api_key", "first"); err != nil {
		log.Fatal(err)
	}
	if err := holder.Set("api_key", "second"); errors.Is(err, appconfig.ErrLockedParameter) {
		log.Printf("second api_key write rejected: %v", err)
	}

	// Watch for edits for a short while
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	events, err := holder.WatchFile(ctx, setup, loader, appconfig.WatchOptions{Debounce: 50 * time.Millisecond})
	if err != nil {
		log.Fatal(err)
	}
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(configPath, []byte("doggyz = \"collie\"\n"), 0644)
	}()
	for ev := range events {
		if ev.Err != nil {
			log.Printf("reload %s rejected: %v", ev.Generation, ev.Err)
			continue
		}
		poodle, _ := holder.Current().Bool("is_a_poodle")
		log.Printf("reload %s applied, poodle=%t", ev.Generation, poodle)
	}

	log.Print(holder.Current().Debug())
}
