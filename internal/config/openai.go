package config

import (
	"os"
	"sync"
)

type OpenAIConfig struct {
	Model   string
	BaseURL string
}

var (
	openAIConfig *OpenAIConfig
	openAIOnce   sync.Once
)

func LoadOpenAIConfig() *OpenAIConfig {
	openAIOnce.Do(func() {
		openAIConfig = &OpenAIConfig{
			Model:   getEnv("OPENAI_MODEL", "gpt-4o"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
		}
	})
	return openAIConfig
}
