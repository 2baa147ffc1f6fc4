package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug               = "debug"
	ConfigDataPath            = "data-path"
	ConfigCPUProfile          = "cpu-profile"
	ConfigMemProfile          = "mem-profile"
	ConfigNatsURL             = "nats-url"
	ConfigNatsSubject         = "nats-subject"
	ConfigNatsQueue           = "nats-queue"
	ConfigCacheDBPath         = "cache-db-path"
	ConfigCacheMemoryFraction = "cache-memory-fraction"
	ConfigThreads             = "threads"
	ConfigSolveTimeout        = "solve-timeout"
	ConfigLambdaFunction      = "lambda-function"
)

// Config wraps a viper instance. Settings come, in increasing order of
// precedence, from defaults, a config file, RUMMY_-prefixed environment
// variables, and command-line flags.
type Config struct {
	viper.Viper
	args []string
}

// DefaultConfig returns a config with only the defaults set. It's meant for
// tests and library use.
func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigDataPath, "./data")
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigMemProfile, "")
	c.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	c.SetDefault(ConfigNatsSubject, "rummy.solve")
	c.SetDefault(ConfigNatsQueue, "rummy-solvers")
	c.SetDefault(ConfigCacheDBPath, "")
	c.SetDefault(ConfigCacheMemoryFraction, 0.05)
	c.SetDefault(ConfigThreads, 0)
	c.SetDefault(ConfigSolveTimeout, "10s")
	c.SetDefault(ConfigLambdaFunction, "rummy-solver")
}

// Load reads the config file (if any), the environment, and the given
// command-line arguments. Arguments that aren't flags are left for the
// caller; see Args.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("rummy", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigDataPath, "./data", "directory holding position fixtures")
	fs.String(ConfigCPUProfile, "", "file to write a CPU profile to")
	fs.String(ConfigMemProfile, "", "file to write a memory profile to")
	fs.String(ConfigNatsURL, "nats://localhost:4222", "NATS server URL")
	fs.String(ConfigNatsSubject, "rummy.solve", "subject solve requests arrive on")
	fs.String(ConfigNatsQueue, "rummy-solvers", "queue group for solve workers")
	fs.String(ConfigCacheDBPath, "", "sqlite file persisting solutions; empty means memory only")
	fs.Float64(ConfigCacheMemoryFraction, 0.05, "fraction of total memory the solution cache may use")
	fs.Int(ConfigThreads, 0, "number of solver threads; 0 means all CPUs")
	fs.Duration(ConfigSolveTimeout, 10*time.Second, "time limit for a single solve; 0 means no limit")
	fs.String(ConfigLambdaFunction, "rummy-solver", "name of the solver Lambda function")
	fs.String("config", "", "path to a config file")
	// Let the shell see its own arguments.
	fs.ParseErrorsAllowlist.UnknownFlags = true
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.args = fs.Args()

	c.SetEnvPrefix("rummy")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	cfgFile, _ := fs.GetString("config")
	if cfgFile != "" {
		c.SetConfigFile(cfgFile)
	} else {
		c.SetConfigName("rummy")
		c.AddConfigPath(".")
		c.AddConfigPath("$HOME/.rummy")
	}
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return err
		}
		log.Debug().Msg("no-config-file")
	}
	return nil
}

// Args returns the command-line arguments left over after flags.
func (c *Config) Args() []string {
	return c.args
}

// AdjustRelativePaths makes the data path absolute, relative to the
// executable's directory, if it can't be found relative to the working
// directory.
func (c *Config) AdjustRelativePaths(exPath string) {
	p := c.GetString(ConfigDataPath)
	if filepath.IsAbs(p) {
		return
	}
	if _, err := os.Stat(p); err == nil {
		return
	}
	c.Set(ConfigDataPath, filepath.Join(exPath, p))
}

// SanitizedSettings returns all settings with secrets removed, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	for k := range settings {
		if strings.Contains(k, "secret") || strings.Contains(k, "token") || strings.Contains(k, "password") {
			settings[k] = "********"
		}
	}
	return settings
}

// Write saves the current settings to the config file in use, or to
// rummy.yaml in the working directory.
func (c *Config) Write() error {
	if c.ConfigFileUsed() == "" {
		return c.WriteConfigAs("rummy.yaml")
	}
	return c.WriteConfig()
}
