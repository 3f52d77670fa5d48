package handlerUtil

import (
	"StyleAdvisor/internal/api/analysis"
	"StyleAdvisor/pkg/log"
	"StyleAdvisor/pkg/response"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// PublicMessage is the text a client may see for err.
func PublicMessage(err error) string {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		return respErr.Error()
	}
	return "An unexpected error occurred"
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	// Expected outcome, not a fault.
	if errors.Is(err, analysis.ErrNoFaceDetected) {
		h.logger.WithFields(fields).Info("No face detected in upload")
		return c.Status(fiber.StatusOK).JSON(analysis.ErrorResponse{Error: analysis.NoFaceMessage})
	}

	if errors.Is(err, context.DeadlineExceeded) {
		h.logger.WithFields(fields).Warn("Request timed out")
		return h.HandleRequestTimeout(c)
	}

	if errors.Is(err, analysis.ErrLandmarkService) || errors.Is(err, analysis.ErrInternalServerError) {
		log.ErrorWithTraceID(fields, "Operation failed with upstream error")
		return c.Status(response.StatusCode(err)).JSON(analysis.ErrorResponse{Error: PublicMessage(err)})
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields["code"] = respErr.Code
		h.logger.WithFields(fields).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(analysis.ErrorResponse{Error: respErr.Error()})
	}

	h.logger.WithFields(fields).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(analysis.ErrorResponse{
		Error: PublicMessage(err),
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(analysis.ErrorResponse{
		Error: utils.StatusMessage(fiber.StatusRequestTimeout),
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
