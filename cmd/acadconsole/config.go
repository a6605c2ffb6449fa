package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type consoleConfig struct {
	ServerURL string `mapstructure:"server_url"`
	Profile   string `mapstructure:"profile"`
	StateDir  string `mapstructure:"state_dir"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// RedisAddr switches the persisted session store from the local state
	// dir to Redis, for shared-kiosk deployments.
	RedisAddr string `mapstructure:"redis_addr"`
}

func defaultConfig() *consoleConfig {
	return &consoleConfig{
		Profile:   "default",
		StateDir:  defaultStateDir(),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

func loadConfig(cfgFile string) (*consoleConfig, error) {
	// A .env next to the binary is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg := defaultConfig()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("acadconsole")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(defaultStateDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ACAD")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv("ACAD_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}

	return cfg, nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".acadconsole"
	}
	return filepath.Join(home, ".acadconsole")
}
