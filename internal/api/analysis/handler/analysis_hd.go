package analysisHandler

import (
	"StyleAdvisor/internal/api/analysis"
	contextPkg "StyleAdvisor/pkg/context"
	"StyleAdvisor/pkg/handlerUtil"
	"StyleAdvisor/pkg/log"
	"StyleAdvisor/pkg/utils"
	"StyleAdvisor/web"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

const (
	requestTimeout = 10 * time.Second
	wsReadTimeout  = 60 * time.Second
	wsWriteTimeout = 10 * time.Second
)

func (h *AnalysisHandler) Index(ctx *fiber.Ctx) error {
	ctx.Type("html", "utf-8")
	return ctx.Send(web.IndexHTML)
}

func (h *AnalysisHandler) Upload(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing image upload")

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, analysis.ErrImageRequired, ctx.Path(), "read_form_file")
	}

	upload := analysis.ImageUpload{
		Filename:    file.Filename,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
	}
	if err := h.validator.Struct(upload); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.utils.ValidateImageFile(file); err != nil {
		return errHandler.Handle(ctx, requestID, uploadError(err), ctx.Path(), "validate_image")
	}

	data, err := h.utils.ReadUploadedFile(file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, uploadError(err), ctx.Path(), "read_image")
	}

	result, err := h.analysisService.Analyze(c, data)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analyze_image")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analysis.NewAnalysisResponse(result))
	}
}

func uploadError(err error) error {
	switch {
	case errors.Is(err, utils.ErrNoFile):
		return analysis.ErrImageRequired
	case errors.Is(err, utils.ErrFileTooLarge):
		return analysis.ErrFileTooLarge
	case errors.Is(err, utils.ErrEmptyFile), errors.Is(err, utils.ErrNotAnImage):
		return analysis.ErrInvalidImageFile
	default:
		return fmt.Errorf("%w: %v", analysis.ErrInternalServerError, err)
	}
}

// handleWebSocket answers every binary frame with the upload response for
// that image. Failed frames get an error object and the stream stays open.
// A frame larger than the upload limit closes the connection.
func (h *AnalysisHandler) handleWebSocket(c *websocket.Conn) {
	h.log.Info("Analysis WebSocket client connected")
	defer h.log.Info("Analysis WebSocket client disconnected")

	c.SetReadLimit(h.utils.MaxFileSize())

	requestID, _ := c.Locals("X-Request-ID").(string)
	if requestID == "" {
		requestID = "unknown"
	}

	c.SetPingHandler(func(data string) error {
		h.log.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	for {
		if err := c.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Analysis WebSocket error: %v", err)
			} else {
				h.log.Info("Analysis WebSocket connection closed")
			}
			break
		}

		var reply interface{}
		if messageType == websocket.BinaryMessage {
			reply = h.analyzeFrame(requestID, message)
		} else {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			reply = analysis.ErrorResponse{Error: "expected a binary image frame"}
		}

		if err := c.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(reply); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}

func (h *AnalysisHandler) analyzeFrame(requestID string, frame []byte) interface{} {
	ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), requestTimeout)
	defer cancel()

	result, err := h.analysisService.Analyze(ctx, frame)
	if err != nil {
		if !errors.Is(err, analysis.ErrNoFaceDetected) {
			h.log.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Error analyzing WebSocket frame")
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return analysis.ErrorResponse{Error: "request timed out"}
		}
		return analysis.ErrorResponse{Error: handlerUtil.PublicMessage(err)}
	}

	return analysis.NewAnalysisResponse(result)
}
