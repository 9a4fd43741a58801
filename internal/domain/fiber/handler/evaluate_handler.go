package handler

import (
	"strconv"

	"github.com/fadilmartias/interview-radar/internal/chart"
	"github.com/fadilmartias/interview-radar/internal/config"
	"github.com/fadilmartias/interview-radar/internal/dto"
	"github.com/fadilmartias/interview-radar/internal/errs"
	"github.com/fadilmartias/interview-radar/internal/middleware"
	"github.com/fadilmartias/interview-radar/internal/model"
	"github.com/fadilmartias/interview-radar/internal/response"
	"github.com/fadilmartias/interview-radar/internal/usecase"
	"github.com/fadilmartias/interview-radar/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type EvaluateHandler struct {
	uc      *usecase.EvaluationUsecase
	appName string
	limits  *config.LimiterConfig
}

func NewEvaluateHandler(uc *usecase.EvaluationUsecase, appCfg *config.AppConfig, limits *config.LimiterConfig) *EvaluateHandler {
	return &EvaluateHandler{uc: uc, appName: appCfg.Name, limits: limits}
}

func (h *EvaluateHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Page)
	app.Post("/", middleware.Debounce(h.limits.EvaluateMax, h.limits.EvaluateWindow, h.pageError), h.Submit)

	api := app.Group("/api")
	api.Post("/evaluate", middleware.Debounce(h.limits.EvaluateMax, h.limits.EvaluateWindow, util.ErrorFrom), h.Evaluate)
	api.Post("/scores", h.Scores)
	api.Post("/chart", h.Chart)
}

func (h *EvaluateHandler) Page(c *fiber.Ctx) error {
	return renderPage(c, fiber.StatusOK, newPageView(h.appName, h.uc.Providers(), "", "", false))
}

// Submit handles the form on the page. A submit with the key or file
// missing re-renders the page as if nothing happened.
func (h *EvaluateHandler) Submit(c *fiber.Ctx) error {
	in, err := readInput(c)
	view := newPageView(h.appName, h.uc.Providers(), in.Provider, in.Model, in.Structured)
	if err == nil {
		var result *model.EvaluationResult
		result, err = h.uc.Evaluate(c.UserContext(), in)
		if err == nil {
			view.Result = newResultView(result)
			return renderPage(c, fiber.StatusOK, view)
		}
	}
	if errors.Is(err, errs.ErrMissingInput) {
		return renderPage(c, fiber.StatusOK, view)
	}
	return h.renderError(c, view, err)
}

func (h *EvaluateHandler) pageError(c *fiber.Ctx, err error) error {
	return h.renderError(c, newPageView(h.appName, h.uc.Providers(), "", "", false), err)
}

func (h *EvaluateHandler) renderError(c *fiber.Ctx, view *pageView, err error) error {
	code := errs.CodeOf(err)
	if code == errs.SystemError {
		log.WithError(err).Error("evaluation page failed")
	}
	view.Error = code.Msg
	return renderPage(c, code.Status, view)
}

func (h *EvaluateHandler) Evaluate(c *fiber.Ctx) error {
	in, err := readInput(c)
	if err != nil {
		return util.ErrorFrom(c, err)
	}
	result, err := h.uc.Evaluate(c.UserContext(), in)
	if err != nil {
		return util.ErrorFrom(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "評価が完了しました",
		Data:    dto.NewEvaluationDTO(result),
		Meta: &response.Meta{
			RequestID:  requestID(c),
			Provider:   result.Provider,
			Model:      result.Model,
			Structured: result.Structured,
			ElapsedMs:  result.Elapsed.Milliseconds(),
		},
	})
}

// Scores parses a reply that was obtained elsewhere.
func (h *EvaluateHandler) Scores(c *fiber.Ctx) error {
	var req dto.ScoresRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "リクエストの形式が正しくありません",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "スコアを抽出しました",
		Data:    dto.NewScoresDTO(h.uc.ParseText(req.Text)),
	})
}

// Chart renders a radar chart for the posted scores, as png or svg.
func (h *EvaluateHandler) Chart(c *fiber.Ctx) error {
	format, err := chart.ParseFormat(c.Query("format"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "対応していない画像形式です",
		}, err)
	}
	var req dto.ChartRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "リクエストの形式が正しくありません",
		}, err)
	}
	if req.Scores.Len() == 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "スコアがありません",
		}, nil)
	}
	img, err := h.uc.RenderScores(req.Scores, format)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "グラフの生成に失敗しました",
		}, err)
	}
	c.Set(fiber.HeaderContentType, img.ContentType)
	return c.Send(img.Data)
}

// readInput collects the form fields. Values are copied because fiber reuses
// its buffers once the handler returns, and an evaluation may be shared with
// a concurrent identical request.
func readInput(c *fiber.Ctx) (model.EvaluationInput, error) {
	in := model.EvaluationInput{
		APIKey:   utils.CopyString(c.FormValue("api_key")),
		Provider: utils.CopyString(c.FormValue("provider")),
		Model:    utils.CopyString(c.FormValue("model")),
	}
	in.Structured, _ = strconv.ParseBool(c.FormValue("structured"))

	file, err := c.FormFile("transcript")
	if err != nil || in.APIKey == "" {
		return in, errs.ErrMissingInput
	}
	transcript, err := util.ExtractTranscript(file)
	if err != nil {
		return in, err
	}
	in.Transcript = transcript
	return in, nil
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
