package remote

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/san-kum/glasstilt/internal/config"
	"github.com/san-kum/glasstilt/internal/particle"
)

//go:embed web/index.html
var indexHTML []byte

const maxBubbles = 500

var startTime = time.Now()

type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	upgrader websocket.Upgrader
	nextID   atomic.Int64
	active   atomic.Int64

	// sessions outlive their hijacked requests; ctx bounds them instead.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer validates cfg and builds the router.
func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.index)
	router.GET("/ws", s.serveWS)

	v1 := router.Group("/api/v1")
	v1.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))
	{
		v1.GET("/health", s.health)
		v1.GET("/panel", s.panel)
		v1.GET("/bubbles", s.bubbles)
	}
	return router
}

func (s *Server) Handler() http.Handler { return s.engine }

// Close ends every live websocket session. Sessions opened afterwards close
// immediately.
func (s *Server) Close() { s.cancel() }

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(s.Close)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[HTTP] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "glasstilt",
		"sessions": s.active.Load(),
		"uptime":   time.Since(startTime).String(),
	})
}

func (s *Server) panel(c *gin.Context) {
	p := s.cfg.Panel
	c.JSON(http.StatusOK, PanelResponse{
		Width:         p.Width,
		Height:        p.Height,
		Perspective:   p.Perspective,
		MaxRotation:   p.MaxRotation,
		HoverLift:     p.HoverLift,
		Factor:        p.InterpolationFactor,
		FPS:           s.cfg.View.FPS,
		GlowBlur:      p.GlowBlur,
		GlowColor:     p.GlowColor,
		ShadowOpacity: p.ShadowOpacity,
		ShadowBlur:    p.ShadowBlur,
		ShadowColor:   p.ShadowColor,
	})
}

func (s *Server) bubbles(c *gin.Context) {
	count := s.cfg.Field.Count
	if v := c.Query("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxBubbles {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be an integer in [0, 500]"})
			return
		}
		count = n
	}
	seed := s.cfg.View.Seed
	if v := c.Query("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be an integer"})
			return
		}
		seed = n
	} else if seed == 0 {
		seed = time.Now().UnixNano()
	}

	specs := particle.NewGenerator(s.cfg.Particles(), seed).Populate(count)
	out := make([]Bubble, len(specs))
	for i, spec := range specs {
		out[i] = bubbleFromSpec(spec)
	}
	c.JSON(http.StatusOK, gin.H{"seed": seed, "bubbles": out})
}

func (s *Server) serveWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] upgrade: %v", err)
		return
	}

	id := s.nextID.Add(1)
	s.active.Add(1)
	defer s.active.Add(-1)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	log.Printf("[WS] session %d connected from %s", id, c.Request.RemoteAddr)
	newSession(id, conn, s.cfg.Tilt(), s.cfg.View.FPS).run(ctx)
	log.Printf("[WS] session %d closed", id)
}
