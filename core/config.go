package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	// StoreConfig configures the record store backend.
	// Backend is one of "apper" (hosted platform), "redis" or "dummy".
	StoreConfig struct {
		Backend   string
		BaseURL   string
		ProjectID string
		APIKey    string
		Timeout   time.Duration
	}

	RedisConfig struct {
		Address  string
		Password string
		DB       int
	}

	Config struct {
		Debug            bool
		TestMode         bool
		Env              string // DEV (local; default), TEST, QA, PROD
		Build            string
		AppName          string
		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string
		Server           ServerConfig
		Store            StoreConfig
		Redis            RedisConfig
	}
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "ClassTrack")
	conf.SetDefault("build", "develop")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("serverAddress", ":8000")
	conf.SetDefault("serverDebugHost", ":4000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("storeBackend", "dummy")
	conf.SetDefault("storeBaseURL", "")
	conf.SetDefault("storeProjectID", "")
	conf.SetDefault("storeAPIKey", "")
	conf.SetDefault("storeTimeout", 30*time.Second)
	conf.SetDefault("redisAddress", "127.0.0.1:6379")
	conf.SetDefault("redisPassword", "")
	conf.SetDefault("redisDB", 0)
	conf.SetDefault("sendgridAPIKey", "")
	conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV")
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:            conf.GetBool("debug"),
		TestMode:         testMode,
		Env:              env,
		Build:            conf.GetString("build"),
		AppName:          conf.GetString("appName"),
		DefaultFromEmail: mail.Address{Address: conf.GetString("defaultFromEmail")},
		SendgridAPIKey:   conf.GetString("sendgridAPIKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:         conf.GetString("serverAddress"),
			DebugHost:       conf.GetString("serverDebugHost"),
			ShutdownTimeout: conf.GetDuration("serverShutdownTimeout"),
		},
		Store: StoreConfig{
			Backend:   conf.GetString("storeBackend"),
			BaseURL:   conf.GetString("storeBaseURL"),
			ProjectID: conf.GetString("storeProjectID"),
			APIKey:    conf.GetString("storeAPIKey"),
			Timeout:   conf.GetDuration("storeTimeout"),
		},
		Redis: RedisConfig{
			Address:  conf.GetString("redisAddress"),
			Password: conf.GetString("redisPassword"),
			DB:       conf.GetInt("redisDB"),
		},
	}
}
