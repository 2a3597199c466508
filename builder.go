// File: lixenwraith/appconfig/builder.go
package appconfig

import (
	"os"
)

// Loader provides a fluent interface for loading values into a container
type Loader struct {
	opts LoadOptions
	file string
	args []string
}

// NewLoader creates a loader with default precedence reading os.Args[1:]
func NewLoader() *Loader {
	return &Loader{
		opts: DefaultLoadOptions(),
		args: os.Args[1:],
	}
}

// WithFile sets the configuration file path
func (l *Loader) WithFile(path string) *Loader {
	l.file = path
	return l
}

// WithArgs sets the command-line arguments
func (l *Loader) WithArgs(args []string) *Loader {
	l.args = args
	return l
}

// WithSources sets the precedence order for value sources (first = highest)
func (l *Loader) WithSources(sources ...Source) *Loader {
	l.opts.Sources = sources
	return l
}

// WithEnvPrefix sets the environment variable prefix
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.opts.EnvPrefix = prefix
	return l
}

// WithEnvTransform sets a custom environment variable transformer
func (l *Loader) WithEnvTransform(fn EnvTransformFunc) *Loader {
	l.opts.EnvTransform = fn
	return l
}

// WithEnvWhitelist limits which parameters are checked for env vars
func (l *Loader) WithEnvWhitelist(names ...string) *Loader {
	if l.opts.EnvWhitelist == nil {
		l.opts.EnvWhitelist = make(map[string]bool)
	}
	for _, name := range names {
		l.opts.EnvWhitelist[name] = true
	}
	return l
}

// WithDotenv adds dotenv files; earlier files win on duplicate keys
func (l *Loader) WithDotenv(paths ...string) *Loader {
	l.opts.DotenvFiles = append(l.opts.DotenvFiles, paths...)
	return l
}

// WithFileFormat forces the configuration file format ("toml", "json", "yaml", "auto")
func (l *Loader) WithFileFormat(format string) *Loader {
	l.opts.FileFormat = format
	return l
}

// WithSecurityOptions restricts which files may be read
func (l *Loader) WithSecurityOptions(opts SecurityOptions) *Loader {
	l.opts.Security = &opts
	return l
}

// File returns the configuration file path the loader will read, if any.
func (l *Loader) File() string {
	return l.file
}

// Options returns a copy of the accumulated load options.
func (l *Loader) Options() LoadOptions {
	return l.opts
}

// Load writes values from all configured sources into c. See Load.
func (l *Loader) Load(c *Container) error {
	return Load(c, l.file, l.args, l.opts)
}
