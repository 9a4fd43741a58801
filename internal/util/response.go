package util

import (
	"runtime/debug"

	"github.com/fadilmartias/interview-radar/internal/config"
	"github.com/fadilmartias/interview-radar/internal/errs"
	"github.com/fadilmartias/interview-radar/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code    int
	Message string
	Data    any
	Meta    *response.Meta
}

type OrderedSuccessResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Meta    *response.Meta `json:"meta,omitempty"`
	Data    any            `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

// SuccessResponse sends the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(OrderedSuccessResponse{
		Success: true,
		Message: params.Message,
		Data:    params.Data,
		Meta:    params.Meta,
	})
}

// ErrorResponse sends the standard error envelope. Outside production the
// first error is echoed back as dev_message along with a stack trace.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, causes ...error) error {
	response := OrderedErrorResponse{
		Success: false,
		Message: params.Message,
		Details: params.Details,
	}
	if !config.LoadAppConfig().IsProduction() {
		if len(causes) > 0 && causes[0] != nil {
			response.DevMessage = causes[0].Error()
			response.Trace = string(debug.Stack())
		}
		if params.DevMessage != "" {
			response.DevMessage = params.DevMessage
		}
		if params.Trace != "" {
			response.Trace = params.Trace
		}
	}

	errorCode := params.Code
	if errorCode == 0 {
		errorCode = fiber.StatusInternalServerError
	}
	return c.Status(errorCode).JSON(response)
}

// ErrorFrom maps err through the error taxonomy and sends the envelope.
func ErrorFrom(c *fiber.Ctx, err error) error {
	code := errs.CodeOf(err)
	return ErrorResponse(c, ErrorResponseFormat{Code: code.Status, Message: code.Msg}, err)
}
