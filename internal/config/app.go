package config

import (
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

type AppConfig struct {
	Name      string
	Env       string
	Port      string
	BaseURL   string
	BodyLimit int
	LogLevel  string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Warnf("APP_ENV not set, defaulting to %s", env)
		}
		appConfig = &AppConfig{
			Name:    getEnv("APP_NAME", "面接評価AIアプリ"),
			Env:     env,
			Port:    getEnv("APP_PORT", ":8080"),
			BaseURL: os.Getenv("APP_URL"),
			// transcripts are not size-checked by the app; this only bounds the multipart body
			BodyLimit: getEnvInt("APP_BODY_LIMIT", 32*1024*1024),
			LogLevel:  getEnv("LOG_LEVEL", "info"),
		}
	})
	return appConfig
}
