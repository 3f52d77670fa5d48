package analysisHandler

import (
	analysisService "StyleAdvisor/internal/api/analysis/service"
	"StyleAdvisor/internal/middleware"
	"StyleAdvisor/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AnalysisHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	analysisService analysisService.IAnalysisService
	utils           utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	as analysisService.IAnalysisService,
	utils utils.IUtils,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: as,
		log:             log,
		validator:       validator,
		middleware:      middleware,
		utils:           utils,
	}
}

func (h *AnalysisHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	analysis := srv.Group("/analysis")
	analysis.Post("/upload", h.middleware.NewRateLimiter, h.Upload)
	analysis.Use("/ws", wsMiddleware)
	analysis.Get("/ws", h.middleware.NewRateLimiter, websocket.New(h.handleWebSocket))
}

// StartRoot mounts the browser page and its form target outside /api/v1.
func (h *AnalysisHandler) StartRoot(app fiber.Router) {
	app.Get("/", h.Index)
	app.Post("/upload", h.middleware.NewRateLimiter, h.Upload)
}
