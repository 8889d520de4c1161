package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	lperrors "launchpad/internal/errors"
	"launchpad/internal/event"
	"launchpad/internal/generator"
	"launchpad/internal/logging"
	"launchpad/internal/promo"
	"launchpad/internal/store"
)

const defaultListLimit = 50

// generateRequest is the wire form of event.Input. Form tags let the
// streaming routes read it from the query string.
type generateRequest struct {
	Topic        string `json:"topic" form:"topic"`
	City         string `json:"city" form:"city"`
	Date         string `json:"date" form:"date"`
	Capacity     int    `json:"capacity" form:"capacity"`
	Budget       string `json:"budget" form:"budget"`
	Vibe         string `json:"vibe" form:"vibe"`
	SpeakersHint string `json:"speakers_hint" form:"speakers_hint"`
	Days         int    `json:"days" form:"days"`
	Enhanced     bool   `json:"enhanced" form:"enhanced"`
	Slug         string `json:"slug" form:"slug"`
}

func (r generateRequest) input() event.Input {
	return event.Input{
		Topic:        r.Topic,
		City:         r.City,
		Date:         r.Date,
		Capacity:     r.Capacity,
		Budget:       r.Budget,
		Vibe:         r.Vibe,
		SpeakersHint: r.SpeakersHint,
		Days:         r.Days,
		Enhanced:     r.Enhanced,
		Slug:         r.Slug,
	}
}

// APIHandler serves the JSON endpoints.
type APIHandler struct {
	generator *generator.Service
	store     *store.EventStore
	breaker   *lperrors.CircuitBreaker
	version   string
	started   time.Time
	logger    logging.Logger
}

func NewAPIHandler(gen *generator.Service, events *store.EventStore, breaker *lperrors.CircuitBreaker, version string) *APIHandler {
	return &APIHandler{
		generator: gen,
		store:     events,
		breaker:   breaker,
		version:   version,
		started:   time.Now(),
		logger:    logging.NewComponentLogger("APIHandler"),
	}
}

// HandleGenerate generates an event synchronously and stores it.
func (h *APIHandler) HandleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	res, err := h.generator.GenerateEvent(c.Request.Context(), req.input())
	if err != nil {
		h.writeGenerationError(c, err)
		return
	}
	h.remember(res.Event)
	c.JSON(http.StatusOK, res)
}

// HandlePromote builds a promotion kit. The body is either a full promotion
// input or just the slug of a stored event.
func (h *APIHandler) HandlePromote(c *gin.Context) {
	var in promo.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if in.Name == "" && in.Slug != "" {
		ev, err := h.store.Get(in.Slug)
		if err != nil {
			abortWithError(c, http.StatusNotFound, "event not found", nil)
			return
		}
		in = promo.FromEvent(ev)
	}

	res, err := h.generator.GeneratePromo(c.Request.Context(), in)
	if err != nil {
		h.writeGenerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleListEvents returns stored events, newest first.
func (h *APIHandler) HandleListEvents(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			abortWithError(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}
	events := h.store.List(limit)
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

func (h *APIHandler) HandleGetEvent(c *gin.Context) {
	ev, err := h.store.Get(c.Param("slug"))
	if errors.Is(err, store.ErrNotFound) {
		abortWithError(c, http.StatusNotFound, "event not found", nil)
		return
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to load event", err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *APIHandler) HandleHealth(c *gin.Context) {
	mode := event.ModeTemplate
	if h.generator.Available() {
		mode = event.ModeSwarm
	}
	breaker := "disabled"
	if h.breaker != nil {
		breaker = h.breaker.State().String()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"mode":    mode,
		"breaker": breaker,
		"events":  h.store.Len(),
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

func (h *APIHandler) remember(ev event.Event) {
	storeEvent(h.store, ev, h.logger)
}

// storeEvent keeps ev for later lookup. Replacing an event under the same
// slug is logged; callers that need both pin distinct slugs.
func storeEvent(events *store.EventStore, ev event.Event, logger logging.Logger) {
	if events.Contains(ev.Slug) {
		logger.Info("Replacing stored event %s (pin a slug to keep both)", ev.Slug)
	}
	if err := events.Put(ev); err != nil {
		logger.Warn("Event %s not stored: %v", ev.Slug, err)
	}
}

func (h *APIHandler) writeGenerationError(c *gin.Context, err error) {
	if isInputError(err) {
		abortWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	abortWithError(c, http.StatusInternalServerError, "generation failed", err)
}

func isInputError(err error) bool {
	return errors.Is(err, event.ErrInvalidInput) || errors.Is(err, promo.ErrInvalidInput)
}
