package config

import (
	"os"
	"sync"
)

type GeminiConfig struct {
	Model   string
	BaseURL string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = &GeminiConfig{
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL: os.Getenv("GEMINI_BASE_URL"),
		}
	})
	return geminiConfig
}
