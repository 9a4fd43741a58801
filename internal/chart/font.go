package chart

import (
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	gochart "github.com/wcharczuk/go-chart/v2"
)

var (
	fontCache   = map[string]*truetype.Font{}
	fontCacheMu sync.Mutex
)

// LoadFont parses the TrueType font at path, falling back to go-chart's
// bundled Roboto when path is empty or unreadable. Roboto has no Japanese
// glyphs, so axis labels need a CJK font for readable output.
func LoadFont(path string) (*truetype.Font, error) {
	if path == "" {
		return gochart.GetDefaultFont()
	}
	fontCacheMu.Lock()
	defer fontCacheMu.Unlock()
	if f, ok := fontCache[path]; ok {
		return f, nil
	}
	f, err := parseFont(path)
	if err != nil {
		log.WithError(err).Warnf("falling back to the default chart font")
		return gochart.GetDefaultFont()
	}
	fontCache[path] = f
	return f, nil
}

func parseFont(path string) (*truetype.Font, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read font %s", path)
	}
	f, err := truetype.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parse font %s", path)
	}
	return f, nil
}
