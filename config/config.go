package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"

	// AI Configuration
	OpenAIKey    string `mapstructure:"OPENAI_API_KEY"` // API key for OpenAI
	ChatModelID  string `mapstructure:"CHAT_MODEL_ID"`  // e.g., "gpt-4o"; empty uses the default
	ImageModelID string `mapstructure:"IMAGE_MODEL_ID"` // e.g., "dall-e-3"; empty uses the default

	// Publishing Configuration
	PublishBaseDomain string `mapstructure:"PUBLISH_BASE_DOMAIN"` // Domain sites are served under (e.g., "aishomepage.dev")
	PublishEndpoint   string `mapstructure:"PUBLISH_ENDPOINT"`    // Hosting API base URL; empty runs the in-memory host
	PublishAPIKey     string `mapstructure:"PUBLISH_API_KEY"`     // API key for the hosting service
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)     // Path to look for the config file in
	viper.SetConfigName("config") // Name of config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.AutomaticEnv() // Read environment variables that match keys

	// Attempt to read the config file
	err = viper.ReadInConfig()
	if err != nil {
		// If config file not found, log it but continue if env vars might be set
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", viper.ConfigFileUsed())
	}

	// Unmarshal the configuration into the Config struct
	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.ServerAddress == "" {
		config.ServerAddress = ":8080"
	}
	if config.OpenAIKey == "" {
		log.Println("WARN: OPENAI_API_KEY is not set.")
	}

	return
}
