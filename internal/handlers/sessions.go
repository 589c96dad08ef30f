package handlers

import (
	"errors"
	"net/http"

	"device_inventory/internal/models"
	"device_inventory/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK     = "ok"
	statusClosed = "closed"

	errSessionNotFound = "session not found"
	errOpenSession     = "failed to open session"
	errDialog          = "failed to process dialog event"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// sessionError maps session lookup and dialog errors to HTTP codes.
func (h *Handler) sessionError(c *gin.Context, err error, userMsg, logKey string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errSessionNotFound})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, "session", c.Param("id"), "operator", currentOperator(c))
	}
}

// OpenSessionRequest selects the list to show.
type OpenSessionRequest struct {
	// Chart type: error, userByRoom, deviceByRoom, deviceByUser, columnData
	Type string `json:"type" binding:"required" example:"deviceByRoom"`
	// Room, device or user the list is scoped to
	Label string `json:"label" example:"P.101"`
}

// SearchRequest replaces the session's text query. Empty clears it.
type SearchRequest struct {
	Query string `json:"query" example:"laptop"`
}

// DialogRequest is one confirmation dialog event.
type DialogRequest struct {
	// export_requested, range_requested, range_chosen, confirmed, cancelled
	Event string `json:"event" binding:"required" example:"export_requested"`
	// last_7_days, last_1_month, last_3_months (range_chosen only)
	Window string `json:"window,omitempty" example:"last_7_days"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Open list session
// @Description  Opens a session for a chart selector and runs its first fetch.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      OpenSessionRequest  true  "Selector"
// @Success      201   {object}  service.View
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/sessions [post]
// @Security     BearerAuth
func (h *Handler) openSession(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	view, err := h.services.Lists.Open(c.Request.Context(), currentOperator(c), models.ChartSelector{
		Type:  models.ChartType(req.Type),
		Label: req.Label,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errOpenSession, "session_open_failed", err, "type", req.Type, "operator", currentOperator(c))
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary      Get session view
// @Description  Sessions opened by other operators answer 404.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  service.View
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id} [get]
// @Security     BearerAuth
func (h *Handler) getSession(c *gin.Context) {
	view, err := h.services.Lists.View(currentOperator(c), c.Param("id"))
	if err != nil {
		h.sessionError(c, err, errSessionNotFound, "session_view_failed")
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Search session records
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Session id"
// @Param        body  body      SearchRequest  true  "Query"
// @Success      200   {object}  service.View
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/sessions/{id}/search [put]
// @Security     BearerAuth
func (h *Handler) searchSession(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	view, err := h.services.Lists.Search(currentOperator(c), c.Param("id"), req.Query)
	if err != nil {
		h.sessionError(c, err, errSessionNotFound, "session_search_failed")
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Refetch session records
// @Description  Fetch failures are logged; the previous list is returned unchanged.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  service.View
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id}/refresh [post]
// @Security     BearerAuth
func (h *Handler) refreshSession(c *gin.Context) {
	view, err := h.services.Lists.Refresh(c.Request.Context(), currentOperator(c), c.Param("id"))
	if err != nil {
		h.sessionError(c, err, errSessionNotFound, "session_refresh_failed")
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Export dialog event
// @Description  Drives the export confirmation flow. Returns the next prompt or the export outcome.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Session id"
// @Param        body  body      DialogRequest  true  "Event"
// @Success      200   {object}  service.DialogStep
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/sessions/{id}/dialog [post]
// @Security     BearerAuth
func (h *Handler) dispatchDialog(c *gin.Context) {
	var req DialogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	step, err := h.services.Lists.Dispatch(c.Request.Context(), currentOperator(c), c.Param("id"), service.DialogEvent{
		Kind:   service.DialogEventKind(req.Event),
		Window: models.RangeWindow(req.Window),
	})
	if err != nil {
		h.sessionError(c, err, errDialog, "session_dialog_failed")
		return
	}
	if step.Outcome != nil && h.log != nil {
		h.log.Infow("export_dialog_finished", "session", c.Param("id"), "operator", currentOperator(c), "ok", step.Outcome.OK, "file", step.Outcome.FileName)
	}
	c.JSON(http.StatusOK, step)
}

// @Summary      Close session
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id} [delete]
// @Security     BearerAuth
func (h *Handler) closeSession(c *gin.Context) {
	if err := h.services.Lists.Close(currentOperator(c), c.Param("id")); err != nil {
		h.sessionError(c, err, errSessionNotFound, "session_close_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusClosed})
}
