package handler

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/fadilmartias/interview-radar/internal/model"
	"github.com/fadilmartias/interview-radar/internal/service"
	"github.com/gofiber/fiber/v2"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type providerOption struct {
	Name         string
	DefaultModel string
	Selected     bool
}

type resultView struct {
	RawText      string
	Scores       []model.Score
	Chart        template.URL
	ChartWarning string
}

// pageView never carries the API key; the password field is always rendered empty.
type pageView struct {
	AppName    string
	Providers  []providerOption
	Model      string
	Structured bool
	Error      string
	Result     *resultView
}

func newPageView(appName string, providers *service.Registry, selected, modelName string, structured bool) *pageView {
	if selected == "" {
		selected = providers.Default()
	}
	v := &pageView{AppName: appName, Model: modelName, Structured: structured}
	for _, name := range providers.Names() {
		opt := providerOption{Name: name, Selected: name == selected}
		if e, err := providers.Get(name); err == nil {
			opt.DefaultModel = e.DefaultModel()
		}
		v.Providers = append(v.Providers, opt)
	}
	return v
}

func newResultView(r *model.EvaluationResult) *resultView {
	v := &resultView{
		RawText:      r.RawText,
		Scores:       r.Scores.Entries(),
		ChartWarning: r.ChartWarning,
	}
	if r.HasChart() {
		// base64 data URI built from our own renderer output
		v.Chart = template.URL(r.Chart.DataURI())
	}
	return v
}

func renderPage(c *fiber.Ctx, status int, v *pageView) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, v); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
