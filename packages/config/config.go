package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config contains the viper instance that holds the configuration of the node together with the CLI flags that define
// where it is loaded from.
type Config struct {
	*viper.Viper

	flags               *flag.FlagSet
	configName          *string
	configDirPath       *string
	skipConfigAvailable *bool
}

// New creates a Config that knows all parameters and their defaults.
func New() (config *Config) {
	config = &Config{
		Viper: viper.New(),
		flags: flag.NewFlagSet("fungible", flag.ContinueOnError),
	}

	config.configName = config.flags.StringP("config", "c", "config", "Filename of the config file without the file extension")
	config.configDirPath = config.flags.StringP("config-dir", "d", ".", "Path to the directory containing the config file")
	config.skipConfigAvailable = config.flags.Bool("skip-config", false, "Skip config file availability check")

	for _, parameter := range parameters {
		parameter.register(config.flags)
		config.SetDefault(parameter.name, parameter.defaultValue)
	}

	return config
}

// Load parses the CLI arguments and reads the config file and the ENV variables.
//
// The config file is looked up in the directory defined via --config-dir and can have any of the extensions supported
// by viper. Keys in ENV variables use underscores instead of dots (e.g. LEDGER_LEAKDETECTION).
func (c *Config) Load(arguments []string) (err error) {
	if err = c.flags.Parse(arguments); err != nil {
		return errors.Errorf("failed to parse CLI flags: %w", err)
	}

	c.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.AutomaticEnv()

	if err = c.BindPFlags(c.flags); err != nil {
		return errors.Errorf("failed to bind CLI flags: %w", err)
	}

	c.SetConfigName(*c.configName)
	c.AddConfigPath(*c.configDirPath)
	if err = c.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || !*c.skipConfigAvailable {
			return errors.Errorf("failed to read config file %s in %s: %w", *c.configName, *c.configDirPath, err)
		}
	}

	return nil
}
