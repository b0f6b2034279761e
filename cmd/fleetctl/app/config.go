package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/autopeer-io/fleetconsole/cmd/fleetctl/app/options"
	"github.com/autopeer-io/fleetconsole/pkg/log"
)

const envPrefix = "FLEETCTL"

// loadConfig merges, from lowest to highest precedence, flag defaults, the
// config file, FLEETCTL_* variables and flags set on the command line into opts.
func loadConfig(v *viper.Viper, fs *pflag.FlagSet, opts *options.ConsoleOptions) error {
	if err := v.BindPFlags(fs); err != nil {
		return err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	}

	if err := v.Unmarshal(opts); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}

// watchLogLevel applies log.level changes of the config file while running.
func watchLogLevel(v *viper.Viper) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		level := v.GetString("log.level")
		if err := log.SetLevel(level); err != nil {
			log.Error(err, "Ignoring invalid log level from config", "file", e.Name)
			return
		}
		log.Info("Log level changed", "level", level, "file", e.Name)
	})
	v.WatchConfig()
}

// interactiveLogPaths keeps logs off the terminal while the TUI owns it.
func interactiveLogPaths(v *viper.Viper, fs *pflag.FlagSet) []string {
	if fs.Changed("log.output-paths") || v.InConfig("log.output-paths") {
		return nil
	}
	if _, ok := os.LookupEnv(envPrefix + "_LOG_OUTPUT_PATHS"); ok {
		return nil
	}
	return []string{filepath.Join(os.TempDir(), "fleetctl.log")}
}
