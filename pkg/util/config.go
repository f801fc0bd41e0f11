package util

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configDir  = "./data/"
)

// ReadConfig loads the detector configuration (ports, timeouts, stop line
// positions, classifier thresholds) from data/config.yaml.
func ReadConfig() error {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read detector config: %w", err)
	}
	return nil
}
