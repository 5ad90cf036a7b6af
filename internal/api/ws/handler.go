package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/drag"
	"github.com/GriffinCanCode/FakeOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/FakeOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/FakeOS/backend/internal/shared/types"
	"github.com/GriffinCanCode/FakeOS/backend/internal/shared/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Frames above MaxMessageBytes get an error frame. Frames above this
	// multiple of it close the connection.
	hardLimitFactor = 8

	outboxSize = 16
)

// snapshotFrame flattens a snapshot next to its frame type
type snapshotFrame struct {
	Type string `json:"type"`
	desktop.Snapshot
}

// Handler serves one desktop session per WebSocket connection
type Handler struct {
	factory   *desktop.Factory
	sessions  *desktop.Registry
	metrics   *monitoring.Metrics
	cfg       config.WebSocketConfig
	logger    *zap.Logger
	upgrader  websocket.Upgrader
	validator *utils.JSONSizeValidator

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHandler creates a new WebSocket handler
func NewHandler(factory *desktop.Factory, sessions *desktop.Registry, metrics *monitoring.Metrics, cfg config.WebSocketConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	validator := utils.DefaultJSONValidator()
	if cfg.MaxMessageBytes > 0 {
		validator = utils.NewJSONSizeValidator(int(cfg.MaxMessageBytes))
	} else {
		cfg.MaxMessageBytes = utils.MaxMessageSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		factory:  factory,
		sessions: sessions,
		metrics:  metrics,
		cfg:      cfg,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // The page may be served from anywhere
			},
		},
		validator: validator,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Close ends every open session and waits for their connections to finish
func (h *Handler) Close() {
	h.cancel()
	h.wg.Wait()
}

// HandleConnection upgrades the request and runs a fresh desktop session
// until either side goes away
func (h *Handler) HandleConnection(c *gin.Context) {
	if h.ctx.Err() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "server shutting down"})
		return
	}

	runner := h.factory.New()
	if err := h.sessions.Add(runner); err != nil {
		h.metrics.SessionRejected()
		h.logger.Warn("Desktop session rejected",
			zap.Int("active", h.sessions.Count()),
			zap.Int("max", h.sessions.Max()),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	defer h.sessions.Remove(runner.ID())

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	h.wg.Add(1)
	defer h.wg.Done()

	h.metrics.SessionStarted()
	defer h.metrics.SessionEnded()

	ctx, cancel := context.WithCancel(h.ctx)
	defer cancel()

	sc := &sessionConn{
		handler: h,
		conn:    conn,
		runner:  runner,
		cancel:  cancel,
		logger:  h.logger.With(zap.String("session_id", runner.ID())),
		outbox:  make(chan any, outboxSize),
		limiter: rate.NewLimiter(rate.Limit(h.cfg.MessagesPerSecond), h.cfg.Burst),
		pending: make(map[drag.PointerID]desktop.PointerMove),
	}
	sc.logger.Info("WebSocket connected", zap.String("remote", c.ClientIP()))

	go func() {
		if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			sc.logger.Error("Desktop session failed", zap.Error(err))
		}
	}()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		sc.writeLoop(ctx)
	}()

	sc.readLoop(ctx)

	cancel()
	<-writerDone
	<-runner.Done()
	conn.Close()

	sc.logger.Info("WebSocket disconnected")
}

// sessionConn pairs one connection with its runner. The write loop is the
// only writer on conn.
type sessionConn struct {
	handler *Handler
	conn    *websocket.Conn
	runner  *desktop.Runner
	cancel  context.CancelFunc
	logger  *zap.Logger
	outbox  chan any
	limiter *rate.Limiter
	pending map[drag.PointerID]desktop.PointerMove // Read loop only
}

func (s *sessionConn) readLoop(ctx context.Context) {
	s.conn.SetReadLimit(s.handler.cfg.MaxMessageBytes * hardLimitFactor)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && ctx.Err() == nil {
				s.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			s.reject(ctx, "binary frames are not supported")
			continue
		}

		kind, ev, err := Decode(data, s.handler.validator)
		if err != nil {
			s.reject(ctx, err.Error())
			continue
		}

		if !s.admit(ev) {
			if move, ok := ev.(desktop.PointerMove); ok {
				// Held back rather than refused; the latest position per
				// pointer goes out with the next admitted message
				s.pending[move.Pointer] = move
				s.handler.metrics.RecordWSMessage("in", "coalesced")
				continue
			}
			s.reject(ctx, "rate limit exceeded")
			continue
		}
		s.handler.metrics.RecordWSMessage("in", kind)

		if kind == types.MsgPing {
			s.send(ctx, types.PongFrame{Type: types.FramePong})
			continue
		}
		if !s.post(ev) {
			return
		}
	}
}

// admit applies the message rate limit. Releasing a pointer is never
// limited, so a drag always ends when the button goes up.
func (s *sessionConn) admit(ev desktop.Event) bool {
	if _, ok := ev.(desktop.PointerUp); ok {
		return true
	}
	return s.limiter.Allow()
}

// post hands ev to the runner. Held-back moves go first, except one that a
// newer move from the same pointer replaces.
func (s *sessionConn) post(ev desktop.Event) bool {
	switch e := ev.(type) {
	case desktop.PointerMove:
		delete(s.pending, e.Pointer)
	case desktop.PointerUp:
		if move, ok := s.pending[e.Pointer]; ok {
			delete(s.pending, e.Pointer)
			if !s.runner.Post(move) {
				return false
			}
		}
	default:
		for p, move := range s.pending {
			delete(s.pending, p)
			if !s.runner.Post(move) {
				return false
			}
		}
	}
	return s.runner.Post(ev)
}

func (s *sessionConn) reject(ctx context.Context, message string) {
	s.handler.metrics.RecordWSMessage("in", "invalid")
	s.logger.Debug("Rejected WebSocket message", zap.String("reason", message))
	s.send(ctx, types.NewErrorFrame(message))
}

func (s *sessionConn) send(ctx context.Context, frame any) {
	select {
	case s.outbox <- frame:
	case <-ctx.Done():
	}
}

func (s *sessionConn) writeLoop(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"))
			s.conn.Close()
			return

		case snap := <-s.runner.Updates():
			if err := s.write(snapshotFrame{Type: types.FrameSnapshot, Snapshot: snap}, types.FrameSnapshot); err != nil {
				s.fail(err)
				return
			}

		case frame := <-s.outbox:
			kind := types.FrameError
			if _, ok := frame.(types.PongFrame); ok {
				kind = types.FramePong
			}
			if err := s.write(frame, kind); err != nil {
				s.fail(err)
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.fail(err)
				return
			}
		}
	}
}

func (s *sessionConn) write(frame any, kind string) error {
	data, err := sonic.Marshal(frame)
	if err != nil {
		return err
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	s.handler.metrics.RecordWSMessage("out", kind)
	return nil
}

// fail ends the session and closes the connection so the read loop returns
func (s *sessionConn) fail(err error) {
	s.logger.Debug("WebSocket write failed", zap.Error(err))
	s.cancel()
	s.conn.Close()
}
