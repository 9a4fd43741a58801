package config

import (
	"sync"
)

type OpenRouterConfig struct {
	Model   string
	BaseURL string
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		openRouterConfig = &OpenRouterConfig{
			Model:   getEnv("OPENROUTER_MODEL", "openai/gpt-4o"),
			BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		}
	})
	return openRouterConfig
}
