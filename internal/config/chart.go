package config

import (
	"os"
	"sync"
)

type ChartConfig struct {
	FontPath string
	Width    int
	Height   int
	Format   string
}

var (
	chartConfig *ChartConfig
	chartOnce   sync.Once
)

func LoadChartConfig() *ChartConfig {
	chartOnce.Do(func() {
		chartConfig = &ChartConfig{
			FontPath: os.Getenv("CHART_FONT_PATH"),
			Width:    getEnvInt("CHART_WIDTH", 600),
			Height:   getEnvInt("CHART_HEIGHT", 600),
			Format:   getEnv("CHART_FORMAT", "png"),
		}
	})
	return chartConfig
}
