package websocketPkg

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"StyleAdvisor/internal/entity"
	"StyleAdvisor/pkg/facedetect"
	"StyleAdvisor/pkg/imaging"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrNotConnected = errors.New("not connected to landmark service")

const (
	opDetect    = "detect"
	opLandmarks = "landmarks"
)

// ILandmarkClient talks to the shape predictor sidecar. It can serve as both
// the face locator and the landmark extractor.
type ILandmarkClient interface {
	facedetect.Locator
	facedetect.LandmarkExtractor
	IsConnected() bool
	Reconnect() error
	CloseConnections()
}

type landmarkRequest struct {
	Op     string         `json:"op"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Pixels string         `json:"pixels"`
	Face   *entity.Region `json:"face,omitempty"`
}

type faceBox struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width" validate:"gt=0"`
	Height int `json:"height" validate:"gt=0"`
}

type landmarkResponse struct {
	Faces     []faceBox `json:"faces" validate:"dive"`
	Landmarks [][2]int  `json:"landmarks"`
	Error     string    `json:"error,omitempty"`
}

type landmarkClient struct {
	url       string
	log       *logrus.Logger
	validator *validator.Validate

	conn *websocket.Conn
	mu   sync.Mutex

	// one request/response pair on the wire at a time
	roundTrip sync.Mutex

	pingInterval     time.Duration
	readTimeout      time.Duration
	writeTimeout     time.Duration
	handshakeTimeout time.Duration
}

func NewLandmarkClient(url string, logger *logrus.Logger) ILandmarkClient {
	client := &landmarkClient{
		url:              url,
		log:              logger,
		validator:        validator.New(),
		pingInterval:     30 * time.Second,
		readTimeout:      10 * time.Second,
		writeTimeout:     5 * time.Second,
		handshakeTimeout: 10 * time.Second,
	}

	go client.connectInBackground()

	return client
}

func (c *landmarkClient) connectInBackground() {
	if _, err := c.ensureConnected(); err != nil {
		c.log.Warnf("Initial connection to landmark service failed: %v. Will retry on demand.", err)
		return
	}
	c.log.Infof("Successfully connected to landmark service at %s", c.url)
}

func (c *landmarkClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn != nil
}

// Reconnect drops the current connection, if any, and dials again.
func (c *landmarkClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	return c.dialLocked()
}

func (c *landmarkClient) ensureConnected() (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return c.conn, nil
	}
	if err := c.dialLocked(); err != nil {
		return nil, err
	}
	return c.conn, nil
}

func (c *landmarkClient) dialLocked() error {
	if c.url == "" {
		return fmt.Errorf("landmark service URL not configured")
	}

	c.log.Debugf("Connecting to landmark service at %s", c.url)

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = c.handshakeTimeout

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return nil
}

func (c *landmarkClient) CloseConnections() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *landmarkClient) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.Warnf("Ping failed for landmark service, marking connection as dead: %v", err)
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

// drop forgets conn if it is still the active connection.
func (c *landmarkClient) drop(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == conn {
		c.conn = nil
	}
	conn.Close()
}

func (c *landmarkClient) call(ctx context.Context, req landmarkRequest) (*landmarkResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.roundTrip.Lock()
	defer c.roundTrip.Unlock()

	conn, err := c.ensureConnected()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConnected, err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("error encoding %s request: %w", req.Op, err)
	}

	now := time.Now()
	writeDeadline := now.Add(c.writeTimeout)
	readDeadline := now.Add(c.readTimeout)
	if d, ok := ctx.Deadline(); ok {
		if d.Before(writeDeadline) {
			writeDeadline = d
		}
		if d.Before(readDeadline) {
			readDeadline = d
		}
	}

	conn.SetWriteDeadline(writeDeadline)
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.drop(conn)
		return nil, fmt.Errorf("error sending %s request: %w", req.Op, err)
	}

	conn.SetReadDeadline(readDeadline)
	_, message, err := conn.ReadMessage()
	if err != nil {
		c.drop(conn)
		return nil, fmt.Errorf("error reading %s response: %w", req.Op, err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	var resp landmarkResponse
	if err := json.Unmarshal(message, &resp); err != nil {
		return nil, fmt.Errorf("error unmarshaling %s response: %w", req.Op, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("landmark service: %s", resp.Error)
	}
	if err := c.validator.Struct(resp); err != nil {
		return nil, fmt.Errorf("invalid %s response: %w", req.Op, err)
	}

	return &resp, nil
}

func newRequest(op string, gray *imaging.Gray) landmarkRequest {
	return landmarkRequest{
		Op:     op,
		Width:  gray.Width,
		Height: gray.Height,
		Pixels: base64.StdEncoding.EncodeToString(gray.Pix),
	}
}

func (c *landmarkClient) Locate(ctx context.Context, gray *imaging.Gray) ([]entity.Region, error) {
	resp, err := c.call(ctx, newRequest(opDetect, gray))
	if err != nil {
		return nil, err
	}

	regions := make([]entity.Region, 0, len(resp.Faces))
	for _, f := range resp.Faces {
		regions = append(regions, entity.Region{
			Left:   f.Left,
			Top:    f.Top,
			Width:  f.Width,
			Height: f.Height,
		})
	}

	c.log.Debugf("Landmark service located %d face(s)", len(regions))
	return regions, nil
}

func (c *landmarkClient) Landmarks(ctx context.Context, gray *imaging.Gray, face entity.Region) (entity.Landmarks, error) {
	var landmarks entity.Landmarks

	req := newRequest(opLandmarks, gray)
	req.Face = &face

	resp, err := c.call(ctx, req)
	if err != nil {
		return landmarks, err
	}

	if err := c.validator.Var(resp.Landmarks, fmt.Sprintf("len=%d", entity.LandmarkCount)); err != nil {
		return landmarks, fmt.Errorf("landmark service returned %d points, want %d", len(resp.Landmarks), entity.LandmarkCount)
	}

	for i, p := range resp.Landmarks {
		landmarks[i] = entity.Point{X: p[0], Y: p[1]}
	}

	return landmarks, nil
}
