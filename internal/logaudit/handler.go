package logaudit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
)

const (
	defaultPageSize = 50
	maxPageSize     = 1000
)

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, log: logger.Default()}
}

// GetLogs godoc
// @Summary      Recent log entries
// @Description  Pages through the audit log persisted by the queue sink, newest first
// @Tags         Logs
// @Produce      json
// @Param        limit   query  int  false  "Page size, capped at 1000"
// @Param        offset  query  int  false  "Rows to skip"
// @Success      200  {array}   logaudit.Entry
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/internal/logs [get]
func (h *Handler) GetLogs(c *gin.Context) {
	limit, offset, ok := pageParams(c)
	if !ok {
		return
	}

	entries, err := h.service.GetEntries(limit, offset)
	if err != nil {
		h.log.Error(err, "Log entry lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read the log entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetLogsByService godoc
// @Summary      Log entries for one service
// @Description  Same page as /logs, filtered to a single producing service
// @Tags         Logs
// @Produce      json
// @Param        service  path   string  true  "Service name, e.g. verifier-api"
// @Param        limit    query  int     false  "Page size, capped at 1000"
// @Param        offset   query  int     false  "Rows to skip"
// @Success      200  {array}   logaudit.Entry
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/internal/logs/service/{service} [get]
func (h *Handler) GetLogsByService(c *gin.Context) {
	limit, offset, ok := pageParams(c)
	if !ok {
		return
	}

	entries, err := h.service.GetEntriesByService(c.Param("service"), limit, offset)
	if err != nil {
		h.log.Error(err, "Log entry lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read the log entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetLogsByLevel godoc
// @Summary      Log entries at one level
// @Description  Same page as /logs, filtered to a single zerolog level
// @Tags         Logs
// @Produce      json
// @Param        level   path   string  true  "Level name, e.g. error"
// @Param        limit   query  int     false  "Page size, capped at 1000"
// @Param        offset  query  int     false  "Rows to skip"
// @Success      200  {array}   logaudit.Entry
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/internal/logs/level/{level} [get]
func (h *Handler) GetLogsByLevel(c *gin.Context) {
	limit, offset, ok := pageParams(c)
	if !ok {
		return
	}

	entries, err := h.service.GetEntriesByLevel(c.Param("level"), limit, offset)
	if err != nil {
		h.log.Error(err, "Log entry lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read the log entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// pageParams reads limit/offset, falling back to defaults on garbage. A
// limit above the cap is the only rejected input; it writes the 400 itself.
func pageParams(c *gin.Context) (limit, offset int, ok bool) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit > maxPageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit cannot exceed 1000"})
		return 0, 0, false
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset, true
}
