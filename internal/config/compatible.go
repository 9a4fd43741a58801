package config

import (
	"os"
	"sync"
)

// CompatibleConfig points at any endpoint speaking the OpenAI chat completions API.
type CompatibleConfig struct {
	Model   string
	BaseURL string
}

var (
	compatibleConfig *CompatibleConfig
	compatibleOnce   sync.Once
)

func LoadCompatibleConfig() *CompatibleConfig {
	compatibleOnce.Do(func() {
		compatibleConfig = &CompatibleConfig{
			Model:   getEnv("COMPATIBLE_MODEL", "gpt-4o"),
			BaseURL: os.Getenv("COMPATIBLE_BASE_URL"),
		}
	})
	return compatibleConfig
}
