// Package configload builds a client configuration from YAML files and the
// environment. It is a thin layer over viper: explicit file values are
// overridden by HTTPKIT_* environment variables, and a .env file next to
// the process is loaded first when present.
package configload

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/taluhq/httpkit"
)

const envPrefix = "HTTPKIT"

// Options controls where configuration is read from.
type Options struct {
	// ConfigFile is the YAML file to read. Empty skips file loading and
	// uses environment variables and defaults only.
	ConfigFile string
	// EnvFile is a dotenv file loaded into the process environment before
	// reading. Empty tries ".env" best-effort.
	EnvFile string
}

// Load reads a client configuration from the given YAML file.
func Load(configFile string) (httpkit.Config, error) {
	return LoadWithOptions(Options{ConfigFile: configFile})
}

// LoadWithOptions reads a client configuration per the given options. The
// returned configuration has defaults applied and is validated.
func LoadWithOptions(opts Options) (httpkit.Config, error) {
	var cfg httpkit.Config

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Missing env files are fine; explicit ones are not.
	if err := godotenv.Load(envFile); err != nil && opts.EnvFile != "" {
		return cfg, httpkit.NewConfigError(fmt.Sprintf("load env file %s: %v", opts.EnvFile, err))
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindKeys(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return cfg, httpkit.NewConfigError(fmt.Sprintf("read config file %s: %v", opts.ConfigFile, err))
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, httpkit.NewConfigError(fmt.Sprintf("unmarshal config: %v", err))
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return httpkit.Config{}, err
	}
	return cfg, nil
}

// bindKeys registers every config key with viper so AutomaticEnv can see
// keys that are absent from the config file.
func bindKeys(v *viper.Viper) {
	keys := []string{
		"name",
		"base_url",
		"timeout",
		"connect_timeout",
		"headers",
		"disable_redirects",
		"max_redirects",
		"pool_idle_timeout",
		"pool_max_idle_per_host",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}
