package config

import (
	"StyleAdvisor/pkg/facedetect"
	"StyleAdvisor/pkg/s3"
	websocketPkg "StyleAdvisor/pkg/websocket"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Collaborators are the face models shared by every request. They are
// built once at startup.
type Collaborators struct {
	Locator   facedetect.Locator
	Landmarks websocketPkg.ILandmarkClient

	closers []func()
}

func (c *Collaborators) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func NewCollaborators(cfg *AppConfig, logger *logrus.Logger) (*Collaborators, error) {
	landmarks := websocketPkg.NewLandmarkClient(cfg.LandmarkServiceURL, logger)
	c := &Collaborators{
		Landmarks: landmarks,
		closers:   []func(){landmarks.CloseConnections},
	}

	switch cfg.FaceLocator {
	case facedetect.BackendRemote:
		c.Locator = landmarks

	case facedetect.BackendCascade:
		path, cleanup, err := localModelPath(cfg, logger)
		if err != nil {
			c.Close()
			return nil, err
		}
		locator, err := facedetect.NewCascadeLocator(path)
		cleanup()
		if err != nil {
			c.Close()
			return nil, err
		}
		c.Locator = locator
		c.closers = append(c.closers, locator.Close)

	default:
		data, err := loadModel(cfg, logger)
		if err != nil {
			c.Close()
			return nil, err
		}
		locator, err := facedetect.NewPigoLocator(data, cfg.Pigo)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.Locator = locator
	}

	logger.Infof("Face locator %q ready", cfg.FaceLocator)
	return c, nil
}

// loadModel reads the cascade from disk or from an s3:// URI.
func loadModel(cfg *AppConfig, logger *logrus.Logger) ([]byte, error) {
	if !s3.IsURI(cfg.FaceCascadePath) {
		data, err := os.ReadFile(cfg.FaceCascadePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read face cascade: %w", err)
		}
		return data, nil
	}

	client, err := s3.New(cfg.AWS)
	if err != nil {
		logger.Errorf("Failed to initialize S3 client: %v", err)
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	logger.Infof("Downloading face cascade from %s", cfg.FaceCascadePath)
	data, err := client.Download(cfg.FaceCascadePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download face cascade: %w", err)
	}
	return data, nil
}

// localModelPath is loadModel for backends that only accept a file path.
func localModelPath(cfg *AppConfig, logger *logrus.Logger) (string, func(), error) {
	if !s3.IsURI(cfg.FaceCascadePath) {
		return cfg.FaceCascadePath, func() {}, nil
	}

	data, err := loadModel(cfg, logger)
	if err != nil {
		return "", nil, err
	}

	dir, err := os.MkdirTemp("", "styleadvisor-model-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create model directory: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	path := filepath.Join(dir, filepath.Base(cfg.FaceCascadePath))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to stage face cascade: %w", err)
	}

	return path, cleanup, nil
}
