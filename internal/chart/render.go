package chart

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/fadilmartias/interview-radar/internal/config"
	"github.com/fadilmartias/interview-radar/internal/model"
	"github.com/pkg/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	}
	return "", fmt.Errorf("chart: unsupported format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatSVG {
		return gochart.SVG
	}
	return gochart.PNG
}

var (
	seriesColor = drawing.ColorFromHex("FFA500")
	gridColor   = drawing.ColorFromHex("B0B0B0")
	textColor   = gochart.ColorBlack
)

const (
	titleHeight    = 48
	labelMargin    = 56
	labelOffset    = 16
	ringStep       = 2.0
	ringSegments   = 96
	markerRadius   = 4.0
	seriesWidth    = 2.0
	fillAlpha      = 64 // ~0.25 opacity
	titleFontSize  = 16.0
	labelFontSize  = 12.0
	tickFontSize   = 9.0
	ringLabelAngle = math.Pi / 8
)

// Renderer draws Radar geometry onto a go-chart renderer.
type Renderer struct {
	Width    int
	Height   int
	FontPath string
}

func NewRenderer(cfg *config.ChartConfig) *Renderer {
	return &Renderer{
		Width:    cfg.Width,
		Height:   cfg.Height,
		FontPath: cfg.FontPath,
	}
}

func (r *Renderer) Render(radar *Radar, format Format) (*model.ChartImage, error) {
	if radar == nil || radar.Axes() == 0 {
		return nil, ErrNoScores
	}
	width, height := r.Width, r.Height
	if width <= 0 {
		width = 600
	}
	if height <= 0 {
		height = 600
	}
	rr, err := format.provider()(width, height)
	if err != nil {
		return nil, errors.Wrap(err, "chart: create renderer")
	}
	font, err := LoadFont(r.FontPath)
	if err != nil {
		return nil, errors.Wrap(err, "chart: load font")
	}
	rr.SetDPI(gochart.DefaultDPI)
	rr.SetFont(font)

	c := canvas{
		rr:     rr,
		svg:    format == FormatSVG,
		cx:     float64(width) / 2,
		cy:     float64(titleHeight) + float64(height-titleHeight)/2,
		radius: math.Min(float64(width), float64(height-titleHeight))/2 - labelMargin,
	}
	if c.radius <= 0 {
		return nil, fmt.Errorf("chart: %dx%d is too small", width, height)
	}

	c.background(width, height)
	c.grid(radar)
	c.series(radar)
	c.labels(radar)
	c.title(radar.Title, width)

	var buf bytes.Buffer
	if err := rr.Save(&buf); err != nil {
		return nil, errors.Wrap(err, "chart: encode")
	}
	return &model.ChartImage{ContentType: format.ContentType(), Data: buf.Bytes()}, nil
}

type canvas struct {
	rr     gochart.Renderer
	svg    bool
	cx, cy float64
	radius float64
}

// text draws body; the SVG renderer writes it into the document unescaped.
func (c *canvas) text(body string, x, y int) {
	if c.svg {
		body = html.EscapeString(body)
	}
	c.rr.Text(body, x, y)
}

// point converts polar coordinates (fraction of the radius, angle) to pixels.
func (c *canvas) point(frac, theta float64) (int, int) {
	x := c.cx + c.radius*frac*math.Cos(theta)
	y := c.cy - c.radius*frac*math.Sin(theta)
	return int(math.Round(x)), int(math.Round(y))
}

func (c *canvas) stroke(color drawing.Color, width float64) {
	c.rr.SetFillColor(drawing.ColorTransparent)
	c.rr.SetStrokeColor(color)
	c.rr.SetStrokeWidth(width)
	c.rr.Stroke()
}

func (c *canvas) background(width, height int) {
	c.rr.SetFillColor(gochart.ColorWhite)
	c.rr.SetStrokeColor(drawing.ColorTransparent)
	c.rr.SetStrokeWidth(0)
	c.rr.MoveTo(0, 0)
	c.rr.LineTo(width, 0)
	c.rr.LineTo(width, height)
	c.rr.LineTo(0, height)
	c.rr.Close()
	c.rr.Fill()
}

func (c *canvas) grid(radar *Radar) {
	c.rr.SetFontSize(tickFontSize)
	c.rr.SetFontColor(gridColor)
	for v := radar.Min + ringStep; v <= radar.Max; v += ringStep {
		frac := radar.Radius(v)
		x, y := c.point(frac, 0)
		c.rr.MoveTo(x, y)
		for i := 1; i <= ringSegments; i++ {
			x, y = c.point(frac, 2*math.Pi*float64(i)/ringSegments)
			c.rr.LineTo(x, y)
		}
		c.rr.Close()
		c.stroke(gridColor, 1)

		tx, ty := c.point(frac, ringLabelAngle)
		c.text(strconv.FormatFloat(v, 'f', -1, 64), tx+2, ty)
	}
	for _, theta := range radar.TickAngles() {
		x, y := c.point(1, theta)
		c.rr.MoveTo(int(math.Round(c.cx)), int(math.Round(c.cy)))
		c.rr.LineTo(x, y)
		c.stroke(gridColor, 1)
	}
}

func (c *canvas) series(radar *Radar) {
	for i, v := range radar.Values {
		x, y := c.point(radar.Radius(v), radar.Angles[i])
		if i == 0 {
			c.rr.MoveTo(x, y)
			continue
		}
		c.rr.LineTo(x, y)
	}
	c.rr.Close()
	c.rr.SetFillColor(seriesColor.WithAlpha(fillAlpha))
	c.rr.SetStrokeColor(seriesColor)
	c.rr.SetStrokeWidth(seriesWidth)
	c.rr.FillStroke()

	c.rr.SetFillColor(seriesColor)
	for i := 0; i < radar.Axes(); i++ {
		x, y := c.point(radar.Radius(radar.Values[i]), radar.Angles[i])
		c.rr.Circle(markerRadius, x, y)
		c.rr.FillStroke()
	}
}

func (c *canvas) labels(radar *Radar) {
	c.rr.SetFontSize(labelFontSize)
	c.rr.SetFontColor(textColor)
	frac := 1 + labelOffset/c.radius
	for i, theta := range radar.TickAngles() {
		label := radar.Labels[i]
		box := c.rr.MeasureText(label)
		x, y := c.point(frac, theta)
		cos := math.Cos(theta)
		switch {
		case cos > 0.1:
		case cos < -0.1:
			x -= box.Width()
		default:
			x -= box.Width() / 2
		}
		c.text(label, x, y+box.Height()/2)
	}
}

func (c *canvas) title(title string, width int) {
	c.rr.SetFontSize(titleFontSize)
	c.rr.SetFontColor(textColor)
	box := c.rr.MeasureText(title)
	c.text(title, (width-box.Width())/2, titleHeight/2+box.Height()/2)
}
