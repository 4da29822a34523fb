package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration. Values come from a .env file,
// environment variables, or the defaults below, in that order of precedence.
type Config struct {
	AppPort       int      `mapstructure:"APP_PORT"`
	DatabasePath  string   `mapstructure:"DATABASE_PATH"`
	EngineURL     string   `mapstructure:"ENGINE_URL"`
	EngineAPIKey  string   `mapstructure:"ENGINE_API_KEY"`
	KnowledgeURL  string   `mapstructure:"KNOWLEDGE_URL"`
	MainModel     string   `mapstructure:"MAIN_MODEL"`
	TitleModel    string   `mapstructure:"TITLE_MODEL"`
	ArtifactModel string   `mapstructure:"ARTIFACT_MODEL"`
	ToolModels    []string `mapstructure:"TOOL_MODELS"`
	LogLevel      string   `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from .env / environment variables with defaults.
func Load() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/forge.db")
	viper.SetDefault("ENGINE_URL", "http://engine:11434/v1")
	viper.SetDefault("ENGINE_API_KEY", "")
	viper.SetDefault("KNOWLEDGE_URL", "")
	viper.SetDefault("MAIN_MODEL", "llama3.1")
	viper.SetDefault("TITLE_MODEL", "llama3.1")
	viper.SetDefault("ARTIFACT_MODEL", "llama3.1")
	viper.SetDefault("TOOL_MODELS", []string{"llama3.1"})
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ModelSupportsTools reports whether the given model is configured as
// tool-capable. Tool schemas are only sent to models on this list.
func (c *Config) ModelSupportsTools(model string) bool {
	for _, m := range c.ToolModels {
		if strings.EqualFold(strings.TrimSpace(m), model) {
			return true
		}
	}
	return false
}
