package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Storage struct {
		AccountsFile string `mapstructure:"accounts_file"`
		HistoryDir   string `mapstructure:"history_dir"`
	} `mapstructure:"storage"`
	Session struct {
		MaxLoginAttempts int `mapstructure:"max_login_attempts"`
	} `mapstructure:"session"`
	Store struct {
		MaxAccounts int `mapstructure:"max_accounts"`
	} `mapstructure:"store"`
}

var AppConfig Config

// LoadConfig reads config.yml from the given path into AppConfig.
// A missing config file is not an error; the terminal must be able to run
// in an empty directory, so every key carries a default.
func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetDefault("storage.accounts_file", "accounts.txt")
	viper.SetDefault("storage.history_dir", ".")
	viper.SetDefault("session.max_login_attempts", 3)
	viper.SetDefault("store.max_accounts", 10)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Error reading config file, %s", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
