package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tastelog/tastelog/internal/journal"
	"github.com/tastelog/tastelog/internal/photo"
	"github.com/tastelog/tastelog/internal/recordstore"
)

type createItemRequest struct {
	Title    string  `json:"title"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
	PhotoURI string  `json:"photoUri"`
	Notes    string  `json:"notes"`
	FirstTry *string `json:"firstTry"` // optional date of the first try
}

type updateItemRequest struct {
	Title    *string  `json:"title"`
	Brand    *string  `json:"brand"`
	Category *string  `json:"category"`
	Rating   *float64 `json:"rating"`
	PhotoURI *string  `json:"photoUri"`
	Notes    *string  `json:"notes"`
}

type logTryRequest struct {
	Date *string `json:"date"` // optional; defaults to today
}

type draftRequest struct {
	Title     *string    `json:"title"`
	Brand     *string    `json:"brand"`
	Category  *string    `json:"category"`
	Rating    *float64   `json:"rating"`
	Notes     *string    `json:"notes"`
	Photo     *photo.Ref `json:"photo"`
	DateTried *string    `json:"dateTried"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "ready": s.store.Ready()})
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleCreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 0 and 5"})
		return
	}

	fields := journal.ItemFields{
		Title:    req.Title,
		Brand:    req.Brand,
		Category: req.Category,
		Rating:   req.Rating,
		PhotoURI: req.PhotoURI,
		Notes:    req.Notes,
	}

	var id int64
	var err error
	if req.FirstTry != nil {
		var tried time.Time
		tried, err = parseDate(*req.FirstTry)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid firstTry date"})
			return
		}
		id, err = s.journal.AddItemWithFirstTry(c.Request.Context(), fields, tried)
	} else {
		id, err = s.journal.AddItem(c.Request.Context(), fields)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) handleQueryItems(c *gin.Context) {
	q := journal.Query{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
	items, err := s.journal.QueryItems(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	if items == nil {
		items = []recordstore.Item{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) handleGetItem(c *gin.Context) {
	id, ok := s.itemID(c)
	if !ok {
		return
	}
	detail, err := s.journal.GetItem(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) handleUpdateItem(c *gin.Context) {
	id, ok := s.itemID(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 0 and 5"})
		return
	}

	err := s.journal.UpdateItem(c.Request.Context(), id, journal.Update{
		Title:    req.Title,
		Brand:    req.Brand,
		Category: req.Category,
		Rating:   req.Rating,
		PhotoURI: req.PhotoURI,
		Notes:    req.Notes,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (s *Server) handleDeleteItem(c *gin.Context) {
	id, ok := s.itemID(c)
	if !ok {
		return
	}
	if err := s.journal.DeleteItem(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (s *Server) handleLogTry(c *gin.Context) {
	id, ok := s.itemID(c)
	if !ok {
		return
	}
	// The body is optional: no body means "today".
	var req logTryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	var eventID int64
	var err error
	if req.Date != nil {
		var at time.Time
		at, err = parseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		eventID, err = s.journal.LogTryAt(c.Request.Context(), id, at)
	} else {
		eventID, err = s.journal.LogTry(c.Request.Context(), id)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": eventID})
}

func (s *Server) handleTryDates(c *gin.Context) {
	id, ok := s.itemID(c)
	if !ok {
		return
	}
	dates, err := s.journal.TryDates(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	last, err := s.journal.LastTried(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tries": dates, "lastTried": last})
}

func (s *Server) handleRecentEvents(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	recent, err := s.journal.RecentEvents(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": recent})
}

func (s *Server) handleStreak(c *gin.Context) {
	streak, err := s.journal.ComputeStreak(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

func (s *Server) handleStockPhotos(c *gin.Context) {
	entries := photo.SearchStock(c.Query("search"))
	if entries == nil {
		entries = []photo.StockEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"photos": entries})
}

func (s *Server) handleGetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, s.draft.Snapshot())
}

func (s *Server) handleUpdateDraft(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Title != nil {
		s.draft.SetTitle(*req.Title)
	}
	if req.Brand != nil {
		s.draft.SetBrand(*req.Brand)
	}
	if req.Category != nil {
		s.draft.SetCategory(*req.Category)
	}
	if req.Rating != nil {
		s.draft.SetRating(*req.Rating)
	}
	if req.Notes != nil {
		s.draft.SetNotes(*req.Notes)
	}
	if req.Photo != nil {
		s.draft.SetPhoto(*req.Photo)
	}
	if req.DateTried != nil {
		s.draft.SetDateTried(*req.DateTried)
	}
	c.JSON(http.StatusOK, s.draft.Snapshot())
}

func (s *Server) handleResetDraft(c *gin.Context) {
	s.draft.Reset()
	c.JSON(http.StatusOK, s.draft.Snapshot())
}

func (s *Server) handleClear(c *gin.Context) {
	if err := s.store.ClearAll(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// itemID parses the :id path parameter, responding 400 itself on failure.
func (s *Server) itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return 0, false
	}
	return id, true
}

// fail maps journal and store errors onto HTTP status codes.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, journal.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, journal.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, recordstore.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	default:
		s.log.Error("request failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseDate accepts either a full RFC 3339 timestamp or a bare date.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
