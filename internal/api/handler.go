// Package api exposes the advisor over HTTP.
package api

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lvonguyen/cspm-advisor/internal/advisor"
	"github.com/lvonguyen/cspm-advisor/internal/dashboard"
	"github.com/lvonguyen/cspm-advisor/internal/recommendation"
	"github.com/lvonguyen/cspm-advisor/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PreferenceStore persists the dark-mode flag.
type PreferenceStore interface {
	DarkMode(ctx context.Context) (bool, error)
	SetDarkMode(ctx context.Context, on bool) error
}

// ContextBuilder supplies the default generation context.
type ContextBuilder interface {
	BuildContext(ctx context.Context) string
}

// Handler serves the advisor API.
type Handler struct {
	store     *recommendation.Store
	generator *advisor.Generator
	contexts  ContextBuilder
	chat      *advisor.ChatSession
	prefs     PreferenceStore
	logger    *zap.Logger
	now       func() time.Time
}

// NewHandler wires the handler. contexts may be nil, in which case generate
// requires an explicit context.
func NewHandler(store *recommendation.Store, generator *advisor.Generator, contexts ContextBuilder, chat *advisor.ChatSession, prefs PreferenceStore, logger *zap.Logger) *Handler {
	return &Handler{
		store:     store,
		generator: generator,
		contexts:  contexts,
		chat:      chat,
		prefs:     prefs,
		logger:    logger,
		now:       time.Now,
	}
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// Health reports liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type listResponse struct {
	View            recommendation.View             `json:"view"`
	Sort            recommendation.SortKey          `json:"sort"`
	Loading         bool                            `json:"loading"`
	Count           int                             `json:"count"`
	Recommendations []recommendation.Recommendation `json:"recommendations"`
}

// ListRecommendations returns a sorted view of the store.
func (h *Handler) ListRecommendations(c echo.Context) error {
	view, err := recommendation.ParseView(c.QueryParam("view"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	key, err := recommendation.ParseSortKey(c.QueryParam("sort"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	recs := recommendation.Select(h.store.All(), view, key)
	return c.JSON(http.StatusOK, listResponse{
		View:            view,
		Sort:            key,
		Loading:         h.store.Loading(),
		Count:           len(recs),
		Recommendations: recs,
	})
}

// UpdateStatus approves, rejects or reopens a recommendation.
func (h *Handler) UpdateStatus(c echo.Context) error {
	id := c.Param("id")
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}
	status, err := recommendation.ParseStatus(body.Status)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	if !h.store.UpdateStatus(id, status) {
		return errorJSON(c, http.StatusNotFound, "recommendation not found")
	}
	h.logger.Info("Recommendation status updated",
		zap.String("id", id),
		zap.String("status", string(status)),
	)

	rec, _ := h.store.Get(id)
	return c.JSON(http.StatusOK, rec)
}

// Generate replaces the store with freshly generated recommendations.
func (h *Handler) Generate(c echo.Context) error {
	var body struct {
		Context string `json:"context"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}

	ctx := c.Request().Context()
	postureContext := strings.TrimSpace(body.Context)
	if postureContext == "" {
		if h.contexts == nil {
			return errorJSON(c, http.StatusBadRequest, "context is required")
		}
		postureContext = h.contexts.BuildContext(ctx)
	}

	h.store.SetLoading(true)
	defer h.store.SetLoading(false)

	recs := h.generator.Generate(ctx, postureContext)
	h.store.Replace(recs)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":           len(recs),
		"recommendations": recs,
	})
}

// Export downloads the store as an XLSX workbook.
func (h *Handler) Export(c echo.Context) error {
	key, err := recommendation.ParseSortKey(c.QueryParam("sort"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, h.store.All(), key); err != nil {
		h.logger.Error("Export failed", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "export failed")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="recommendations.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Gauges returns the implemented-work totals.
func (h *Handler) Gauges(c echo.Context) error {
	_, implemented := recommendation.Partition(h.store.All())
	return c.JSON(http.StatusOK, recommendation.Aggregate(implemented))
}

// Summary returns counts by status and priority.
func (h *Handler) Summary(c echo.Context) error {
	return c.JSON(http.StatusOK, recommendation.Summarize(h.store.All(), h.now()))
}

// Metrics returns the response-time and pipeline widgets.
func (h *Handler) Metrics(c echo.Context) error {
	return c.JSON(http.StatusOK, dashboard.Snapshot())
}

// ChatMessages returns the transcript.
func (h *Handler) ChatMessages(c echo.Context) error {
	return c.JSON(http.StatusOK, h.chat.Messages())
}

// SendChat forwards a user message and returns the model reply.
func (h *Handler) SendChat(c echo.Context) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}
	if strings.TrimSpace(body.Text) == "" {
		return errorJSON(c, http.StatusBadRequest, "text is required")
	}

	reply := h.chat.Send(c.Request().Context(), body.Text)
	return c.JSON(http.StatusOK, reply)
}

type preferences struct {
	DarkMode bool `json:"dark_mode"`
}

// GetPreferences returns the persisted preferences.
func (h *Handler) GetPreferences(c echo.Context) error {
	on, err := h.prefs.DarkMode(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to read preferences", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "failed to read preferences")
	}
	return c.JSON(http.StatusOK, preferences{DarkMode: on})
}

// PutPreferences writes the preferences through.
func (h *Handler) PutPreferences(c echo.Context) error {
	var body struct {
		DarkMode *bool `json:"dark_mode"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}
	if body.DarkMode == nil {
		return errorJSON(c, http.StatusBadRequest, "dark_mode is required")
	}
	if err := h.prefs.SetDarkMode(c.Request().Context(), *body.DarkMode); err != nil {
		h.logger.Error("Failed to write preferences", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "failed to write preferences")
	}
	return c.JSON(http.StatusOK, preferences{DarkMode: *body.DarkMode})
}
