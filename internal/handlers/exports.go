package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"device_inventory/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid  = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid    = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errListExports  = "failed to load exports"
	errFileNotFound = "export file not found"
	errDownloadFile = "failed to open export file"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	layoutDateTime  = "2006-01-02 15:04:05"
	layoutDate      = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List exports
// @Description  Filter the export log by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'), type, label, status or operator. If 'to' is date-only, it is treated as end-of-day inclusive.
// @Tags         exports
// @Produce      json
// @Param        from    query   string  false  "Start of range"  example(2025-08-01)
// @Param        to      query   string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        type    query   string  false  "Chart type"  Enums(error,userByRoom,deviceByRoom,deviceByUser,columnData)
// @Param        label   query   string  false  "Room, device or user label"
// @Param        status  query   string  false  "Outcome"  Enums(SUCCESS,FAILED)
// @Param        mine    query   bool    false  "Only exports run by the caller"
// @Success      200   {object}  map[string]interface{}  "count, exports"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/exports [get]
// @Security     BearerAuth
func (h *Handler) getExports(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		from time.Time
		to   time.Time
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
		return
	}
	filter := service.ExportLogFilter{
		From:   from,
		To:     to,
		Type:   c.Query("type"),
		Label:  c.Query("label"),
		Status: c.Query("status"),
	}
	if mine, _ := strconv.ParseBool(c.DefaultQuery("mine", "false")); mine {
		filter.OperatorID = currentOperator(c)
	}
	entries, err := h.services.ExportLog.List(ctx, filter)
	if errors.Is(err, service.ErrInvalidFilter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListExports, "exports_list_failed", err, "filter", filter)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"exports": entries,
	})
}

// @Summary      Download export
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        name  path  string  true  "File name returned by the dialog outcome"
// @Success      200
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/exports/files/{name} [get]
// @Security     BearerAuth
func (h *Handler) downloadExport(c *gin.Context) {
	name := c.Param("name")
	path, err := h.services.Downloads.FilePath(name)
	if errors.Is(err, service.ErrFileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": errFileNotFound})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDownloadFile, "export_download_failed", err, "file", name)
		return
	}
	c.Header("Content-Type", xlsxContentType)
	c.FileAttachment(path, name)
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
