package config

import (
	analysisHandler "StyleAdvisor/internal/api/analysis/handler"
	analysisService "StyleAdvisor/internal/api/analysis/service"
	"StyleAdvisor/internal/middleware"
	"StyleAdvisor/pkg/facedetect"
	"StyleAdvisor/pkg/redis"
	"StyleAdvisor/pkg/utils"
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	log         *logrus.Logger
	appConfig   *AppConfig
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	redisServer redis.IRedis
	locator     facedetect.Locator
	extractor   facedetect.LandmarkExtractor
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.appConfig == nil {
		return nil, fmt.Errorf("app config is required")
	}
	if server.locator == nil || server.extractor == nil {
		return nil, fmt.Errorf("face locator and landmark extractor are required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithAppConfig(cfg *AppConfig) ServerOption {
	return func(s *Server) error {
		s.appConfig = cfg
		return nil
	}
}

// WithRedisServer connects the shared rate limit store. An empty address
// keeps rate limits in process memory.
func WithRedisServer() ServerOption {
	return func(s *Server) error {
		if s.appConfig == nil {
			return fmt.Errorf("app config must be set before redis")
		}
		if s.appConfig.Redis.Address == "" {
			return nil
		}
		s.redisServer = redis.New(s.appConfig.Redis)
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.appConfig == nil {
			return fmt.Errorf("app config must be set before middleware")
		}
		s.middleware = middleware.New(s.log, middleware.RateLimitConfig{
			RequestsPerSecond: s.appConfig.RateLimitRPS,
			Burst:             s.appConfig.RateLimitBurst,
		}, s.redisServer)
		return nil
	}
}

func WithFaceLocator(locator facedetect.Locator) ServerOption {
	return func(s *Server) error {
		s.locator = locator
		return nil
	}
}

func WithLandmarkExtractor(extractor facedetect.LandmarkExtractor) ServerOption {
	return func(s *Server) error {
		s.extractor = extractor
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		if s.appConfig == nil {
			s.utils = utils.New()
			return nil
		}
		s.utils = utils.NewWithLimit(s.appConfig.MaxUploadBytes)
		return nil
	}
}

func (s *Server) RegisterHandler() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	// Analysis
	analysisServices := analysisService.NewAnalysisService(s.log, s.locator, s.extractor, s.appConfig.MaxImagePixels)
	analysisHandlers := analysisHandler.New(s.log, s.validator, s.middleware, analysisServices, s.utils)
	analysisHandlers.StartRoot(s.engine)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, analysisHandlers)

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.engine.Listen(fmt.Sprintf(":%s", s.appConfig.Port))
	}()

	select {
	case err := <-errCh:
		s.closeResources()
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server...")
	err := s.engine.ShutdownWithTimeout(shutdownTimeout)
	s.closeResources()
	return err
}

func (s *Server) closeResources() {
	if s.redisServer != nil {
		if err := s.redisServer.Close(); err != nil {
			s.log.Warnf("Failed to close redis: %v", err)
		}
	}
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
