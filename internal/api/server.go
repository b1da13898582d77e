// Package api exposes the journal over HTTP for the application shell.
//
// The API is a thin adapter: handlers decode JSON, call the journal, and
// map its error taxonomy onto status codes (validation 400, not-found 404,
// store unavailable 503). Every response is plain data; storage internals
// never leak through.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tastelog/tastelog/internal/draft"
	"github.com/tastelog/tastelog/internal/journal"
	"github.com/tastelog/tastelog/internal/observability"
	"github.com/tastelog/tastelog/internal/recordstore"
)

// Server wires the journal, record store, and draft holder behind a gin
// router.
type Server struct {
	journal *journal.Journal
	store   *recordstore.Store
	draft   *draft.Holder
	log     *observability.Logger
	engine  *gin.Engine
}

// NewServer builds the router. The returned server implements http.Handler.
func NewServer(j *journal.Journal, store *recordstore.Store, d *draft.Holder, log *observability.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		journal: j,
		store:   store,
		draft:   d,
		log:     log,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestID(), s.requestLog())

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/stats", s.handleStats)

	items := engine.Group("/items")
	{
		items.POST("", s.handleCreateItem)
		items.GET("", s.handleQueryItems)
		items.GET("/:id", s.handleGetItem)
		items.PUT("/:id", s.handleUpdateItem)
		items.DELETE("/:id", s.handleDeleteItem)
		items.POST("/:id/tries", s.handleLogTry)
		items.GET("/:id/tries", s.handleTryDates)
	}

	engine.GET("/tries/recent", s.handleRecentEvents)
	engine.GET("/streak", s.handleStreak)
	engine.GET("/photos/stock", s.handleStockPhotos)

	dr := engine.Group("/draft")
	{
		dr.GET("", s.handleGetDraft)
		dr.PUT("", s.handleUpdateDraft)
		dr.POST("/reset", s.handleResetDraft)
	}

	engine.POST("/admin/clear", s.handleClear)

	s.engine = engine
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// requestID tags each request with a unique ID, echoed in the response.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// requestLog logs one line per request.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString("request_id"),
		)
	}
}
