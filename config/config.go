package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Redis message bus configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisBusDB    int    `mapstructure:"REDIS_BUS_DB"`

	// Building engine configuration.
	BuildingName   string        `mapstructure:"BUILDING_NAME"`
	CapacityPerDay int           `mapstructure:"CAPACITY_PER_DAY"`
	AnnounceDelay  time.Duration `mapstructure:"ANNOUNCE_DELAY"`
	AnnouncePeriod time.Duration `mapstructure:"ANNOUNCE_PERIOD"`
	ReaperInterval time.Duration `mapstructure:"REAPER_INTERVAL"`
	PendingMaxAge  time.Duration `mapstructure:"PENDING_MAX_AGE"`

	// Agent configuration.
	AgentName        string `mapstructure:"AGENT_NAME"`
	AgentConcurrency int    `mapstructure:"AGENT_CONCURRENCY"`

	// Client configuration.
	ClientID     string        `mapstructure:"CLIENT_ID"`
	ReplyTimeout time.Duration `mapstructure:"REPLY_TIMEOUT"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_BUS_DB", 0)
	viper.SetDefault("BUILDING_NAME", "BuildingA")
	viper.SetDefault("CAPACITY_PER_DAY", 10)
	viper.SetDefault("ANNOUNCE_DELAY", 5*time.Second)
	viper.SetDefault("ANNOUNCE_PERIOD", 10*time.Second)
	viper.SetDefault("REAPER_INTERVAL", 60*time.Second)
	viper.SetDefault("PENDING_MAX_AGE", 5*time.Minute)
	viper.SetDefault("AGENT_NAME", "")
	viper.SetDefault("AGENT_CONCURRENCY", 10)
	viper.SetDefault("CLIENT_ID", "")
	viper.SetDefault("REPLY_TIMEOUT", 10*time.Second)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
