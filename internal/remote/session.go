package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/glasstilt/internal/tilt"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
	eventBuffer    = 64
)

// session is one browser connection. The run loop is the only goroutine that
// touches the controller; the pumps only move bytes.
type session struct {
	id      int64
	conn    *websocket.Conn
	ctrl    *tilt.Controller
	surface *streamSurface
	cfg     tilt.Config
	fps     int
	frame   int

	events chan PointerMessage
	send   chan []byte
}

func newSession(id int64, conn *websocket.Conn, cfg tilt.Config, fps int) *session {
	surface := &streamSurface{}
	return &session{
		id:      id,
		conn:    conn,
		ctrl:    tilt.New(cfg, surface),
		surface: surface,
		cfg:     cfg,
		fps:     fps,
		events:  make(chan PointerMessage, eventBuffer),
		send:    make(chan []byte, sendBuffer),
	}
}

func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		s.writePump()
		close(done)
	}()
	go s.readPump(ctx, cancel)

	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			close(s.send)
			<-done
			return
		case m := <-s.events:
			s.handle(m)
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *session) handle(m PointerMessage) {
	switch m.Type {
	case MsgEnter:
		s.ctrl.PointerEnter()
	case MsgMove:
		if err := s.ctrl.PointerMove(m.X, m.Y, m.Bounds.Rect()); err != nil {
			log.Printf("[WS] session %d: move skipped: %v", s.id, err)
			s.push(ErrorMessage{Type: MsgError, Message: err.Error()})
		}
	case MsgLeave:
		s.ctrl.PointerLeave()
	default:
		s.push(ErrorMessage{Type: MsgError, Message: fmt.Sprintf("unknown message type %q", m.Type)})
	}
}

func (s *session) tick() {
	cur := s.ctrl.Tick()
	s.frame++
	if !s.surface.take() {
		return
	}
	g := s.surface.glow
	s.push(FrameMessage{
		Type:       MsgFrame,
		Frame:      s.frame,
		Mode:       s.ctrl.Mode().String(),
		Transform:  cur.Transform().String(),
		Transition: transitionValue(s.surface.transition, s.cfg.Transition),
		Glow:       GlowMessage{X: g.X, Y: g.Y, Opacity: g.Opacity},
	})
}

// push queues a message, dropping it if the client is not keeping up. Frames
// are superseded by the next tick anyway.
func (s *session) push(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WS] session %d: marshal: %v", s.id, err)
		return
	}
	select {
	case s.send <- data:
	default:
		log.Printf("[WS] session %d: send buffer full, dropping message", s.id)
	}
}

func (s *session) readPump(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var m PointerMessage
		if err := s.conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] session %d: read: %v", s.id, err)
			}
			return
		}
		select {
		case s.events <- m:
		case <-ctx.Done():
			return
		}
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] session %d: write: %v", s.id, err)
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] session %d: ping: %v", s.id, err)
				return
			}
		}
	}
}
