package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/atomicstack/action-picker/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App        app.Config
	Logging    Logging
	ConfigFile string
	Flags      map[string]string
	Args       []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	keyConfig           = "config"
	keySocket           = "socket"
	keyCatalog          = "catalog"
	keyDB               = "db"
	keyContext          = "context"
	keyContextSensitive = "context-sensitive"
	keyWidth            = "width"
	keyHeight           = "height"
	keyFooter           = "footer"
	keyVerbose          = "verbose"
	keyTrace            = "trace"
	keyLogFile          = "log-file"
	keyPollInterval     = "poll-interval"
)

const envPrefix = "ACTION_PICKER_"

const defaultPollInterval = 1500 * time.Millisecond

// envName maps a flag key to its environment variable.
func envName(key string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// RegisterFlags adds the picker options to fs. Defaults shown in help are the
// static ones; environment and config file values are layered in Resolve.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(keyConfig, "", "path to a YAML config file")
	fs.String(keySocket, "", "path to the tmux socket (overrides environment detection)")
	fs.String(keyCatalog, "", "path to the YAML action catalog")
	fs.String(keyDB, "", "path to the settings database")
	fs.String(keyContext, "", "fixed editing context (disables tmux context polling)")
	fs.Bool(keyContextSensitive, false, "start with context-sensitive filtering")
	fs.Int(keyWidth, 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int(keyHeight, 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool(keyFooter, false, "enable footer hint row (disabled by default)")
	fs.Bool(keyVerbose, false, "show handler output in the status line")
	fs.Bool(keyTrace, false, "enable verbose JSON trace logging")
	fs.String(keyLogFile, "", "path to the log file")
	fs.Duration(keyPollInterval, defaultPollInterval, "tmux context poll interval (0 disables)")
}

// Environ loads ./.env into the process environment and returns it.
func Environ() []string {
	_ = godotenv.Load()
	return os.Environ()
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("action-picker", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := Resolve(fs, environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// Resolve layers values for the flags registered on fs. Precedence is
// changed flag, then environment, then config file, then default.
func Resolve(fs *pflag.FlagSet, environ []string) (Config, error) {
	env := parseEnv(environ)
	v := viper.New()
	setDefaults(v, env)

	configFile, explicit := configPath(fs, env)
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
			}
			configFile = ""
		}
	}

	applyEnv(v, env)
	fs.Visit(func(f *pflag.Flag) {
		if f.Name == keyConfig {
			return
		}
		v.Set(f.Name, f.Value.String())
	})

	width := v.GetInt(keyWidth)
	height := v.GetInt(keyHeight)
	if width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", width)
	}
	if height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", height)
	}

	cfg := Config{
		App: app.Config{
			SocketPath:       v.GetString(keySocket),
			CatalogPath:      expandHome(v.GetString(keyCatalog), env),
			DBPath:           expandHome(v.GetString(keyDB), env),
			Context:          v.GetString(keyContext),
			ContextSensitive: v.GetBool(keyContextSensitive),
			Width:            width,
			Height:           height,
			ShowFooter:       v.GetBool(keyFooter),
			Verbose:          v.GetBool(keyVerbose),
			PollInterval:     v.GetDuration(keyPollInterval),
		},
		Logging: Logging{
			FilePath: expandHome(v.GetString(keyLogFile), env),
			Trace:    v.GetBool(keyTrace),
		},
		ConfigFile: configFile,
	}
	cfg.Flags = map[string]string{
		keySocket:           cfg.App.SocketPath,
		keyCatalog:          cfg.App.CatalogPath,
		keyDB:               cfg.App.DBPath,
		keyContext:          cfg.App.Context,
		keyContextSensitive: strconv.FormatBool(cfg.App.ContextSensitive),
		keyWidth:            strconv.Itoa(width),
		keyHeight:           strconv.Itoa(height),
		keyFooter:           strconv.FormatBool(cfg.App.ShowFooter),
		keyVerbose:          strconv.FormatBool(cfg.App.Verbose),
		keyPollInterval:     cfg.App.PollInterval.String(),
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, env map[string]string) {
	v.SetDefault(keySocket, "")
	v.SetDefault(keyCatalog, filepath.Join(configHome(env), "action-picker", "actions.yaml"))
	v.SetDefault(keyDB, filepath.Join(dataHome(env), "action-picker", "settings.db"))
	v.SetDefault(keyContext, "")
	v.SetDefault(keyContextSensitive, false)
	v.SetDefault(keyWidth, 0)
	v.SetDefault(keyHeight, 0)
	v.SetDefault(keyFooter, false)
	v.SetDefault(keyVerbose, false)
	v.SetDefault(keyTrace, false)
	v.SetDefault(keyLogFile, "")
	v.SetDefault(keyPollInterval, defaultPollInterval)
}

// applyEnv copies well-formed ACTION_PICKER_* values over file values.
// Malformed numbers and booleans fall back to the lower layers.
func applyEnv(v *viper.Viper, env map[string]string) {
	for _, key := range []string{keySocket, keyCatalog, keyDB, keyContext, keyLogFile} {
		if val, ok := env[envName(key)]; ok {
			v.Set(key, val)
		}
	}
	for _, key := range []string{keyWidth, keyHeight} {
		if val, ok := envOrInt(env, envName(key)); ok {
			v.Set(key, val)
		}
	}
	for _, key := range []string{keyContextSensitive, keyFooter, keyVerbose, keyTrace} {
		if val, ok := envOrBool(env, envName(key)); ok {
			v.Set(key, val)
		}
	}
	if raw, ok := env[envName(keyPollInterval)]; ok {
		if d, err := time.ParseDuration(strings.TrimSpace(raw)); err == nil {
			v.Set(keyPollInterval, d)
		}
	}
}

func configPath(fs *pflag.FlagSet, env map[string]string) (string, bool) {
	if f := fs.Lookup(keyConfig); f != nil && f.Changed {
		return expandHome(f.Value.String(), env), true
	}
	if val := strings.TrimSpace(env[envName(keyConfig)]); val != "" {
		return expandHome(val, env), true
	}
	return filepath.Join(configHome(env), "action-picker", "config.yaml"), false
}

func configHome(env map[string]string) string {
	if dir := strings.TrimSpace(env["XDG_CONFIG_HOME"]); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(env), ".config")
}

func dataHome(env map[string]string) string {
	if dir := strings.TrimSpace(env["XDG_DATA_HOME"]); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(env), ".local", "share")
}

func homeDir(env map[string]string) string {
	if home := strings.TrimSpace(env["HOME"]); home != "" {
		return home
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func expandHome(path string, env map[string]string) string {
	if path == "~" {
		return homeDir(env)
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(env), path[2:])
	}
	return path
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrInt(env map[string]string, key string) (int, bool) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func envOrBool(env map[string]string, key string) (bool, bool) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, false
	}
	return parsed, true
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.CatalogPath) == "" {
		return errors.New("catalog path is required")
	}
	if strings.TrimSpace(cfg.App.DBPath) == "" {
		return errors.New("settings database path is required")
	}
	if cfg.App.PollInterval < 0 {
		return fmt.Errorf("poll-interval must be >= 0 (got %s)", cfg.App.PollInterval)
	}
	return nil
}
