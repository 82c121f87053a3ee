package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"moviehub/internal/admin"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/repository"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes every registered admin screen over the same set of
// routes.
type AdminHandler struct {
	site     *admin.Site
	messages repository.MessageStore
}

func NewAdminHandler(site *admin.Site, messages repository.MessageStore) *AdminHandler {
	return &AdminHandler{site: site, messages: messages}
}

// RegisterRoutes expects rg to be guarded by AuthMiddleware and RequireAdmin.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Index)
	rg.GET("/messages", h.Messages)
	rg.GET("/:screen/", h.List)
	rg.POST("/:screen/", h.Create)
	rg.GET("/:screen/:id", h.Get)
	rg.PUT("/:screen/:id", h.Update)
	rg.DELETE("/:screen/:id", h.Delete)
	rg.PATCH("/:screen/:id/inline", h.UpdateInline)
	rg.POST("/:screen/actions/:action", h.RunAction)
}

type actionRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

func (h *AdminHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"site":    h.site.Config(),
		"screens": h.site.Index(),
	})
}

// Messages pops the caller's pending flash messages.
func (h *AdminHandler) Messages(c *gin.Context) {
	msgs, err := h.messages.Pop(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	if msgs == nil {
		msgs = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (h *AdminHandler) screen(c *gin.Context) (admin.Screen, bool) {
	screen, ok := h.site.Screen(c.Param("screen"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown admin screen"})
		return nil, false
	}
	return screen, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// List serves the changelist: ?q= searches, ?page=&page_size= paginate and
// any filter name narrows the rows. ?format=html renders a table.
func (h *AdminHandler) List(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}
	opts := screen.Options()

	q := admin.ListQuery{
		Search:  c.Query("q"),
		Filters: make(map[string]string, len(opts.ListFilter)),
	}
	if p, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = p
	}
	if ps, err := strconv.Atoi(c.Query("page_size")); err == nil {
		q.PageSize = ps
	}
	for _, name := range opts.ListFilter {
		if v, ok := c.GetQuery(name); ok {
			q.Filters[name] = v
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, err := screen.List(ctx, q)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("format") != "html" {
		c.JSON(http.StatusOK, page)
		return
	}

	msgs, err := h.messages.Pop(ctx, c.GetString(middleware.ContextUserID))
	if err != nil {
		slog.WarnContext(ctx, "failed to load admin messages", "error", err)
	}
	var buf bytes.Buffer
	if err := admin.RenderList(&buf, h.site.Config(), opts, page, msgs); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *AdminHandler) Get(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, err := screen.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *AdminHandler) Create(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, err := screen.Create(ctx, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	h.flash(ctx, c, screen.Options().VerboseName+" was added successfully.")
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *AdminHandler) Update(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := screen.Update(ctx, id, payload); err != nil {
		respondError(c, err)
		return
	}
	page, err := screen.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.flash(ctx, c, screen.Options().VerboseName+" was changed successfully.")
	c.JSON(http.StatusOK, page)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := screen.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	h.flash(ctx, c, screen.Options().VerboseName+" was deleted successfully.")
	c.Status(http.StatusNoContent)
}

// UpdateInline saves list-editable columns of one row, e.g. {"draft": false}.
func (h *AdminHandler) UpdateInline(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := screen.UpdateInline(ctx, id, payload); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "updated": json.RawMessage(payload)})
}

// RunAction applies a bulk action to the posted ids and queues its message.
func (h *AdminHandler) RunAction(c *gin.Context) {
	screen, ok := h.screen(c)
	if !ok {
		return
	}
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items must be selected in order to perform actions on them."})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	msg, err := screen.RunAction(ctx, c.Param("action"), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	h.flash(ctx, c, msg)
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h *AdminHandler) flash(ctx context.Context, c *gin.Context, msg string) {
	if err := h.messages.Push(ctx, c.GetString(middleware.ContextUserID), msg); err != nil {
		slog.WarnContext(ctx, "failed to queue admin message", "error", err)
	}
}
