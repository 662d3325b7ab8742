package main

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"

	"github.com/lucas-albers-lz4/nsdebug/pkg/debug"
	"github.com/lucas-albers-lz4/nsdebug/pkg/exitcodes"
	"github.com/lucas-albers-lz4/nsdebug/pkg/fileutil"
	log "github.com/lucas-albers-lz4/nsdebug/pkg/log"
	"github.com/lucas-albers-lz4/nsdebug/pkg/namespace"
)

const (
	configFileName = ".nsdebug.yaml"

	configKeyDebug       = "debug"
	configKeyDebugColors = "debug_colors"
	configKeyLogLevel    = "log_level"
)

// configEnv maps config keys to the environment variables that override them.
var configEnv = map[string]string{
	configKeyDebug:       namespace.EnvDebug,
	configKeyDebugColors: debug.EnvColors,
	configKeyLogLevel:    log.EnvLogLevel,
}

// configKeys returns the supported config keys in a stable order.
func configKeys() []string {
	keys := make([]string, 0, len(configEnv))
	for k := range configEnv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// loadSettings reads the config file at path (or $HOME/.nsdebug.yaml) from fs
// and binds the environment overrides. A missing file is not an error.
func loadSettings(fs afero.Fs, path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("yaml")
	// An empty DEBUG still means "nothing enabled" and must not fall back to the file.
	v.AllowEmptyEnv(true)
	for key, env := range configEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, &exitcodes.ExitCodeError{
				Code: exitcodes.ExitInternalError,
				Err:  fmt.Errorf("failed to bind %s: %w", env, err),
			}
		}
	}

	if path == "" {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			log.Debug("No home directory, skipping config file", "error", err)
			return v, nil
		}
	}

	exists, err := fileutil.FileExists(fs, path)
	if err != nil {
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitIOError, Err: err}
	}
	if !exists {
		log.Debug("Config file not found, using environment only", "path", path)
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  pkgerrors.Wrapf(err, "failed to read config file %s", path),
		}
	}
	log.Debug("Loaded config file", "path", path)
	return v, nil
}

// settingsEnvironment serves DEBUG and DEBUG_COLORS from the loaded settings,
// so the config file acts as a fallback for unset environment variables.
type settingsEnvironment struct {
	v *viper.Viper
}

// LookupEnv implements namespace.Environment.
func (e settingsEnvironment) LookupEnv(key string) (string, bool) {
	if e.v == nil {
		return "", false
	}
	for configKey, env := range configEnv {
		if env == key && e.v.IsSet(configKey) {
			return e.v.GetString(configKey), true
		}
	}
	return "", false
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the nsdebug config file",
		Long: `Show or change the nsdebug config file.

The config file is YAML with the keys:
  debug         default allow-list when DEBUG is not set, e.g. "[app:*]"
  debug_colors  default for DEBUG_COLORS ("true", "false", "1", "0")
  log_level     nsdebug's own log level

Environment variables always take precedence over the file.`,
		Example: `  # Enable every namespace under app: by default
  nsdebug config set debug '[app:*]'

  # Show the effective settings
  nsdebug config show

  # Use a project-local config file
  nsdebug --config ./nsdebug.yaml config set debug_colors false`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE:  configShowRun,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a setting to the config file",
		RunE:  configSetRun,
	})
	return configCmd
}

func configShowRun(cmd *cobra.Command, _ []string) error {
	effective := map[string]string{}
	for _, key := range configKeys() {
		effective[key] = settings.GetString(key)
	}
	if used := settings.ConfigFileUsed(); used != "" {
		effective["config_file"] = used
	}

	out, err := yaml.Marshal(effective)
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInternalError,
			Err:  fmt.Errorf("failed to marshal settings: %w", err),
		}
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func configSetRun(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitMissingRequiredArg,
			Err:  errors.New("config set requires a key and a value"),
		}
	}
	key, value := args[0], args[1]
	if !slices.Contains(configKeys(), key) {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInvalidConfigKey,
			Err:  fmt.Errorf("unknown config key %q (valid keys: %v)", key, configKeys()),
		}
	}

	path := cfgFile
	if path == "" {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return err
		}
	}

	doc, err := readConfigDocument(AppFs, path)
	if err != nil {
		return err
	}
	doc[key] = value

	data, err := yaml.Marshal(doc)
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInternalError,
			Err:  fmt.Errorf("failed to marshal config: %w", err),
		}
	}
	if err := fileutil.WritePrivateFile(AppFs, path, data); err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitIOError,
			Err:  pkgerrors.Wrap(err, "failed to save config"),
		}
	}

	cliDebug.Logf("wrote %s=%q to %s", key, value, path)
	log.Info("Config updated", "path", path, "key", key)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", key, path)
	return err
}

// readConfigDocument returns the raw YAML document at path, or an empty one if
// the file does not exist yet. Unknown keys are preserved.
func readConfigDocument(fs afero.Fs, path string) (map[string]any, error) {
	exists, err := fileutil.FileExists(fs, path)
	if err != nil {
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitIOError, Err: err}
	}
	if !exists {
		return map[string]any{}, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitIOError,
			Err:  pkgerrors.Wrapf(err, "failed to read config file %s", path),
		}
	}
	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  pkgerrors.Wrapf(err, "failed to parse config file %s", path),
		}
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}
