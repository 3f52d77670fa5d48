package config

import (
	"StyleAdvisor/pkg/facedetect"
	"StyleAdvisor/pkg/imaging"
	"StyleAdvisor/pkg/redis"
	"StyleAdvisor/pkg/s3"
	"StyleAdvisor/pkg/utils"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

type AppConfig struct {
	AppName        string `validate:"required"`
	AppEnv         string `validate:"required,oneof=development production test"`
	Port           string `validate:"required,numeric"`
	MaxUploadBytes int64  `validate:"gt=0"`
	MaxImagePixels int    `validate:"gt=0"`

	FaceLocator        string `validate:"oneof=pigo cascade remote"`
	FaceCascadePath    string `validate:"required_unless=FaceLocator remote"`
	LandmarkServiceURL string `validate:"required,url"`
	Pigo               facedetect.PigoConfig

	RateLimitRPS   float64 `validate:"gt=0"`
	RateLimitBurst int     `validate:"gt=0"`

	Redis redis.Config
	AWS   s3.Config
}

// LoadAppConfig reads the process environment. Call godotenv first when a
// .env file should be honored.
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		AppName:            getEnv("APP_NAME", "Style Advisor"),
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("APP_PORT", "3000"),
		FaceLocator:        getEnv("FACE_LOCATOR", facedetect.BackendPigo),
		FaceCascadePath:    getEnv("FACE_CASCADE_PATH", "./models/facefinder"),
		LandmarkServiceURL: getEnv("LANDMARK_SERVICE_URL", "ws://localhost:8765/landmarks"),
		Redis: redis.Config{
			Address:  os.Getenv("REDIS_ADDRESS"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		AWS: s3.Config{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	defaults := facedetect.DefaultPigoConfig()
	var err error

	if cfg.MaxUploadBytes, err = getInt64("MAX_UPLOAD_BYTES", utils.DefaultMaxFileSize); err != nil {
		return nil, err
	}
	if cfg.MaxImagePixels, err = getInt("MAX_IMAGE_PIXELS", imaging.DefaultMaxPixels); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Pigo.MinSize, err = getInt("PIGO_MIN_SIZE", defaults.MinSize); err != nil {
		return nil, err
	}
	if cfg.Pigo.MaxSize, err = getInt("PIGO_MAX_SIZE", defaults.MaxSize); err != nil {
		return nil, err
	}
	if cfg.Pigo.ShiftFactor, err = getFloat("PIGO_SHIFT_FACTOR", defaults.ShiftFactor); err != nil {
		return nil, err
	}
	if cfg.Pigo.ScaleFactor, err = getFloat("PIGO_SCALE_FACTOR", defaults.ScaleFactor); err != nil {
		return nil, err
	}
	if cfg.Pigo.IoUThreshold, err = getFloat("PIGO_IOU_THRESHOLD", defaults.IoUThreshold); err != nil {
		return nil, err
	}
	minQuality, err := getFloat("PIGO_MIN_QUALITY", float64(defaults.MinQuality))
	if err != nil {
		return nil, err
	}
	cfg.Pigo.MinQuality = float32(minQuality)

	return cfg, nil
}

func (c *AppConfig) Validate(v *validator.Validate) error {
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
