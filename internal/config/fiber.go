package config

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

// NewFiber leaves some headroom over the upload limit for the multipart
// envelope.
func NewFiber(cfg *AppConfig) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:           cfg.AppName,
			BodyLimit:         int(cfg.MaxUploadBytes) + 64*1024,
			DisableKeepalive:  false,
			StrictRouting:     true,
			CaseSensitive:     true,
			EnablePrintRoutes: cfg.AppEnv == "development",
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
		})

	return app
}
