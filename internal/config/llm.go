package config

import (
	"sync"
	"time"
)

type LLMConfig struct {
	DefaultProvider string
	RequestTimeout  time.Duration
	Temperature     float64
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		llmConfig = &LLMConfig{
			DefaultProvider: getEnv("LLM_DEFAULT_PROVIDER", "openai"),
			RequestTimeout:  getEnvDuration("LLM_REQUEST_TIMEOUT", 3*time.Minute),
			// negative means "leave it to the provider"
			Temperature: getEnvFloat("LLM_TEMPERATURE", -1),
		}
	})
	return llmConfig
}
