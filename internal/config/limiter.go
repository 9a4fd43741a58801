package config

import (
	"sync"
	"time"
)

type LimiterConfig struct {
	GlobalMax      int
	GlobalWindow   time.Duration
	EvaluateMax    int
	EvaluateWindow time.Duration
}

var (
	limiterConfig *LimiterConfig
	limiterOnce   sync.Once
)

func LoadLimiterConfig() *LimiterConfig {
	limiterOnce.Do(func() {
		limiterConfig = &LimiterConfig{
			GlobalMax:      getEnvInt("GLOBAL_RATE_MAX", 50),
			GlobalWindow:   time.Minute,
			EvaluateMax:    getEnvInt("EVALUATE_RATE_MAX", 1),
			EvaluateWindow: getEnvDuration("EVALUATE_RATE_WINDOW", 4*time.Second),
		}
	})
	return limiterConfig
}
