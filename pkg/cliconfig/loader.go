package cliconfig

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/testhub/testhub-go/pkg/logging"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "TESTHUB_"
	// EnvConfigFile names an explicit config file.
	EnvConfigFile = EnvPrefix + "CONFIG"

	LocalConfigFileName  = ".testhub.yaml"
	GlobalConfigDir      = "testhub"
	GlobalConfigFileName = "config.yaml"
)

// Sentinel errors for this package.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// ConfigError reports a file that could not be read or parsed.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Message
}

// Unwrap lets errors.Is match ErrLoadConfig.
func (e *ConfigError) Unwrap() error {
	return ErrLoadConfig
}

// LoadOptions controls Load.
type LoadOptions struct {
	// Path is an explicit config file. It must exist when set.
	Path string
	// Flags holds values set on the command line, keyed like the file
	// (e.g. "base_url", "log.level").
	Flags map[string]any
	// Environ replaces os.Environ, mainly for tests.
	Environ []string
}

// FindConfigFile returns the first config file that exists, checking
// $TESTHUB_CONFIG, ./.testhub.yaml and the per-user config directory. An
// empty string means none was found.
func FindConfigFile() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// SearchPaths lists the implicit config locations in lookup order.
func SearchPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, LocalConfigFileName))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, GlobalConfigDir, GlobalConfigFileName))
	}
	return paths
}

// Load resolves configuration from every layer.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")
	sources := map[string]string{}

	layer := func(source string, p koanf.Provider, parser koanf.Parser) error {
		lk := koanf.New(".")
		if err := lk.Load(p, parser); err != nil {
			return err
		}
		for _, key := range lk.Keys() {
			sources[key] = source
		}
		return k.Merge(lk)
	}

	if err := layer(SourceDefault, confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	path := opts.Path
	if path == "" {
		path = FindConfigFile()
	}
	if path != "" {
		if err := layer(SourceFile, file.Provider(path), yaml.Parser()); err != nil {
			return nil, &ConfigError{Path: path, Message: err.Error()}
		}
	}

	if err := layer(SourceEnv, envProvider(opts.Environ), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if len(opts.Flags) > 0 {
		if err := layer(SourceFlag, confmap.Provider(opts.Flags, "."), nil); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	cfg := NewDefault()
	if err := unmarshal(k, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Sources = sources
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envProvider maps TESTHUB_AGENT__POLL_INTERVAL to agent.poll_interval.
// TESTHUB_CONFIG selects the file and is not a config key.
func envProvider(environ []string) koanf.Provider {
	transform := func(s string) string {
		if s == EnvConfigFile {
			return ""
		}
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}
	if environ == nil {
		return env.Provider(EnvPrefix, ".", transform)
	}
	return &sliceEnv{environ: environ, transform: transform}
}

// sliceEnv reads variables from a fixed list instead of the process.
type sliceEnv struct {
	environ   []string
	transform func(string) string
}

func (e *sliceEnv) ReadBytes() ([]byte, error) {
	return nil, errors.New("env provider does not support this method")
}

func (e *sliceEnv) Read() (map[string]any, error) {
	out := map[string]any{}
	for _, kv := range e.environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		if key = e.transform(key); key != "" {
			out[key] = value
		}
	}
	return maps.Unflatten(out, "."), nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsToDuration reads bare numbers as seconds, so "interval: 30" in a
// file or TESTHUB_TIMEOUT=30 means thirty seconds rather than thirty
// nanoseconds. Strings with a unit are left to the duration-string hook.
func secondsToDuration(from, to reflect.Type, data any) (any, error) {
	if to != durationType || from == durationType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.String:
		s := strings.TrimSpace(reflect.ValueOf(data).String())
		if secs, err := strconv.ParseFloat(s, 64); err == nil {
			return time.Duration(secs * float64(time.Second)), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Duration(reflect.ValueOf(data).Int()) * time.Second, nil
	case reflect.Float32, reflect.Float64:
		return time.Duration(reflect.ValueOf(data).Float() * float64(time.Second)), nil
	}
	return data, nil
}

func unmarshal(k *koanf.Koanf, cfg *Config) error {
	return k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.DecodeHookFuncType(secondsToDuration),
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           cfg,
			WeaklyTypedInput: true,
		},
	})
}

// Validate checks values that would otherwise fail later with a less
// helpful message.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url %q must be an http(s) URL", ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout %s is negative", ErrInvalidConfig, c.Timeout)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != string(logging.FormatText) && f != string(logging.FormatJSON) {
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Agent.HeartbeatInterval <= 0 || c.Agent.PollInterval <= 0 {
		return fmt.Errorf("%w: agent intervals must be positive", ErrInvalidConfig)
	}
	return nil
}

// ResolveToken returns Token, or the trimmed contents of TokenFile.
func (c *Config) ResolveToken() (string, error) {
	if c.Token != "" || c.TokenFile == "" {
		return c.Token, nil
	}
	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
