package main

import (
	"log/slog"

	"github.com/spf13/viper"
)

func loadConfig(name string) {
	viper.SetConfigFile(name)

	viper.SetDefault("api_addr", ":8080")
	viper.SetDefault("db", "visitcoord.sqlite")
	viper.SetDefault("admin_users", map[string]string{})

	if err := viper.ReadInConfig(); err != nil {
		slog.Info("error reading config file, using defaults", slog.Any("error", err))
	}
}
