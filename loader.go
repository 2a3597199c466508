// FILE: lixenwraith/appconfig/loader.go
package appconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source identifies where a loaded value came from, used to define load precedence
type Source string

const (
	// SourceCLI represents values from command-line arguments
	SourceCLI Source = "cli"
	// SourceEnv represents values from process environment variables
	SourceEnv Source = "env"
	// SourceDotenv represents values from dotenv files
	SourceDotenv Source = "dotenv"
	// SourceFile represents values from a TOML, JSON or YAML configuration file
	SourceFile Source = "file"
)

// EnvTransformFunc converts a parameter name to an environment variable name
type EnvTransformFunc func(name string) string

// SecurityOptions restricts which configuration files may be read
type SecurityOptions struct {
	// PreventPathTraversal rejects relative paths that climb out of the working directory
	PreventPathTraversal bool
	// MaxFileSize in bytes (0 = unlimited)
	MaxFileSize int64
	// EnforceFileOwnership requires the file to be owned by the effective user (Unix only)
	EnforceFileOwnership bool
}

// LoadOptions configures how values are gathered from multiple sources
type LoadOptions struct {
	// Sources defines the precedence order (first = highest priority)
	// Default: [SourceCLI, SourceEnv, SourceDotenv, SourceFile]
	Sources []Source

	// EnvPrefix is prepended to environment variable names
	// Example: "MYAPP_" transforms "server.port" to "MYAPP_SERVER_PORT"
	EnvPrefix string

	// EnvTransform customizes how names map to environment variables.
	// It applies to both the process environment and dotenv files.
	EnvTransform EnvTransformFunc

	// EnvWhitelist limits which parameters are checked for env vars (nil = all)
	EnvWhitelist map[string]bool

	// DotenvFiles are read in order; earlier files win on duplicate keys
	DotenvFiles []string

	// FileFormat forces "toml", "json" or "yaml"; "" or "auto" detects
	FileFormat string

	// Security restricts file reads (nil = no restrictions)
	Security *SecurityOptions
}

// DefaultLoadOptions returns the standard load options
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Sources: []Source{SourceCLI, SourceEnv, SourceDotenv, SourceFile},
	}
}

// Load gathers values for the container's declared parameters from every
// source in opts, picks the highest-precedence value per parameter and writes
// it with a single Set, so lock policies see one write per load. Values for
// undeclared names are ignored.
//
// A missing configuration or dotenv file is reported as ErrConfigNotFound
// joined into the returned error but does not stop other sources. Write
// failures (locked or invalid lock option) are joined as well.
func Load(c *Container, filePath string, args []string, opts LoadOptions) error {
	names := c.Names()
	layers := make(map[Source]map[string]any, len(opts.Sources))
	var loadErrors []error

	for _, source := range opts.Sources {
		var values map[string]any
		var err error

		switch source {
		case SourceFile:
			if filePath == "" {
				continue
			}
			values, err = readFile(filePath, opts)
		case SourceEnv:
			values, err = readEnv(names, opts)
		case SourceDotenv:
			values, err = readDotenv(names, opts)
		case SourceCLI:
			if len(args) == 0 {
				continue
			}
			values, err = readCLI(args)
		default:
			return fmt.Errorf("unknown configuration source %q", source)
		}

		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				loadErrors = append(loadErrors, err)
			} else {
				return err
			}
		}
		layers[source] = values
	}

	for _, name := range names {
		for _, source := range opts.Sources {
			value, exists := layers[source][name]
			if !exists {
				continue
			}
			if err := c.Set(name, value); err != nil {
				loadErrors = append(loadErrors, fmt.Errorf("%s source: %w", source, err))
			}
			break
		}
	}

	return errors.Join(loadErrors...)
}

// LoadFile loads values from a single configuration file.
func LoadFile(c *Container, filePath string) error {
	opts := DefaultLoadOptions()
	opts.Sources = []Source{SourceFile}
	return Load(c, filePath, nil, opts)
}

// LoadEnv loads values from environment variables with the given prefix.
func LoadEnv(c *Container, prefix string) error {
	opts := DefaultLoadOptions()
	opts.Sources = []Source{SourceEnv}
	opts.EnvPrefix = prefix
	return Load(c, "", nil, opts)
}

// LoadCLI loads values from command-line arguments.
func LoadCLI(c *Container, args []string) error {
	opts := DefaultLoadOptions()
	opts.Sources = []Source{SourceCLI}
	return Load(c, "", args, opts)
}

// readFile reads and parses a configuration file into flattened name->value pairs
func readFile(path string, opts LoadOptions) (map[string]any, error) {
	sec := opts.Security

	if sec != nil && sec.PreventPathTraversal {
		clean := filepath.Clean(path)
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("potential path traversal detected in config path: %s", path)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat config file '%s': %w", path, err)
	}

	if sec != nil && sec.MaxFileSize > 0 && info.Size() > sec.MaxFileSize {
		return nil, fmt.Errorf("config file '%s' exceeds maximum size %d bytes", path, sec.MaxFileSize)
	}

	if sec != nil && sec.EnforceFileOwnership && runtime.GOOS != "windows" {
		if stat, ok := info.Sys().(*syscall.Stat_t); ok && stat.Uid != uint32(os.Geteuid()) {
			return nil, fmt.Errorf("config file '%s' is not owned by current user (file UID: %d, process UID: %d)",
				path, stat.Uid, os.Geteuid())
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file '%s': %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if sec != nil && sec.MaxFileSize > 0 {
		reader = io.LimitReader(file, sec.MaxFileSize)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	format := opts.FileFormat
	if format == "" || format == "auto" {
		format = detectFileFormat(path)
		if format == "" {
			format = detectFormatFromContent(data)
		}
	}

	parsed, err := parseFileData(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return flattenMap(parsed, ""), nil
}

// parseFileData decodes data of the given format into a nested map
func parseFileData(data []byte, format string) (map[string]any, error) {
	parsed := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("TOML: %w", err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&parsed); err != nil {
			return nil, fmt.Errorf("JSON: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to determine config format")
	}
	return parsed, nil
}

// readEnv looks up each declared name in the process environment
func readEnv(names []string, opts LoadOptions) (map[string]any, error) {
	transform := envTransform(opts)
	found := make(map[string]any)

	for _, name := range names {
		if opts.EnvWhitelist != nil && !opts.EnvWhitelist[name] {
			continue
		}
		envVar := transform(name)
		if envVar == "" {
			continue
		}
		if value, exists := os.LookupEnv(envVar); exists {
			if len(value) > MaxValueSize {
				return nil, fmt.Errorf("%w: %s", ErrValueSize, envVar)
			}
			found[name] = value
		}
	}
	return found, nil
}

// readDotenv reads dotenv files without touching the process environment
func readDotenv(names []string, opts LoadOptions) (map[string]any, error) {
	if len(opts.DotenvFiles) == 0 {
		return nil, nil
	}

	merged := make(map[string]string)
	var notFound []error
	for _, path := range opts.DotenvFiles {
		vars, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				notFound = append(notFound, fmt.Errorf("%w: %s", ErrConfigNotFound, path))
				continue
			}
			return nil, fmt.Errorf("failed to read dotenv file '%s': %w", path, err)
		}
		for k, v := range vars {
			if _, exists := merged[k]; !exists {
				merged[k] = v
			}
		}
	}

	transform := envTransform(opts)
	found := make(map[string]any)
	for _, name := range names {
		if opts.EnvWhitelist != nil && !opts.EnvWhitelist[name] {
			continue
		}
		if value, exists := merged[transform(name)]; exists {
			if len(value) > MaxValueSize {
				return nil, fmt.Errorf("%w: %s", ErrValueSize, transform(name))
			}
			found[name] = value
		}
	}
	return found, errors.Join(notFound...)
}

// readCLI parses arguments into flattened name->value pairs
func readCLI(args []string) (map[string]any, error) {
	parsed, err := parseArgs(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCLIParse, err)
	}
	return parsed, nil
}

func envTransform(opts LoadOptions) EnvTransformFunc {
	if opts.EnvTransform != nil {
		return opts.EnvTransform
	}
	return defaultEnvTransform(opts.EnvPrefix)
}

// defaultEnvTransform maps "server.max-conns" to PREFIX + "SERVER_MAX_CONNS"
func defaultEnvTransform(prefix string) EnvTransformFunc {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	return func(name string) string {
		return prefix + strings.ToUpper(replacer.Replace(name))
	}
}

// parseArgs processes "--name=value", "--name value" and "--flag" arguments.
// Values are kept as strings; typed reads convert them.
func parseArgs(args []string) (map[string]any, error) {
	result := make(map[string]any)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		content := strings.TrimPrefix(arg, "--")
		if content == "" {
			// "--" separator
			continue
		}

		name, value, hasValue := strings.Cut(content, "=")
		if !hasValue {
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
				value = args[i+1]
				i++
			} else {
				value = "true"
			}
		}

		if err := validateKey(name); err != nil {
			return nil, fmt.Errorf("invalid command-line key %q: %w", name, err)
		}
		result[name] = value
	}
	return result, nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing, strictest first.
func detectFormatFromContent(data []byte) string {
	if err := json.Unmarshal(data, &map[string]any{}); err == nil {
		return "json"
	}
	if err := toml.Unmarshal(data, &map[string]any{}); err == nil {
		return "toml"
	}
	if err := yaml.Unmarshal(data, &map[string]any{}); err == nil {
		return "yaml"
	}
	return ""
}

// validateKey checks that a command-line key is a dot-separated sequence of TOML bare keys.
func validateKey(name string) error {
	if name == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidParameterName)
	}
	for _, segment := range strings.Split(name, ".") {
		if !isValidKeySegment(segment) {
			return fmt.Errorf("%w: invalid segment %q in %q", ErrInvalidParameterName, segment, name)
		}
	}
	return nil
}
