/**
 * @description
 * This package handles the configuration management for the service. It uses
 * the Viper library to read configuration from environment variables, with an
 * optional .env file, providing a centralized way to manage application
 * settings.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the transaction-core
// service. These values are loaded from environment variables.
type Config struct {
	ServerPort      string `mapstructure:"SERVER_PORT"`
	RabbitMQURL     string `mapstructure:"RABBITMQ_URL"`
	RatesServiceURL string `mapstructure:"RATES_SERVICE_URL"`
	InternalAPIKey  string `mapstructure:"INTERNAL_API_KEY"`
	SequenceSeed    int64  `mapstructure:"SEQUENCE_SEED"`
}

// LoadConfig reads configuration from environment variables from the given
// path. It uses Viper to automatically bind environment variables to the
// Config struct.
func LoadConfig(path string) (config Config, err error) {
	// Tell viper the path to look for the optional .env file.
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	// Enable automatic binding of environment variables.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values.
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SEQUENCE_SEED", 1)

	// Bind environment variables explicitly to ensure they appear in Unmarshal.
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("RATES_SERVICE_URL")
	_ = viper.BindEnv("INTERNAL_API_KEY")
	_ = viper.BindEnv("SEQUENCE_SEED")

	// Attempt to read the config file. It's okay if it doesn't exist.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
		err = nil
	}

	// Unmarshal the configuration into the Config struct.
	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.ServerPort = port
	}
	config.InternalAPIKey = strings.TrimSpace(config.InternalAPIKey)
	if config.SequenceSeed <= 0 {
		log.Printf("level=warn component=config msg=\"non-positive sequence seed; coercing to 1\" seed=%d", config.SequenceSeed)
		config.SequenceSeed = 1
	}

	return
}
