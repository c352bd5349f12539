package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"subite-backend/internal/pagination"

	"github.com/gin-gonic/gin"
)

// listParams is the pagination window requested by the caller.
type listParams struct {
	Limit  int
	Cursor int64
}

// parseListParams validates limit and cursor query parameters before any
// predicate or query work happens. On failure it writes the 400 response
// and returns false.
func parseListParams(c *gin.Context) (listParams, bool) {
	p := listParams{Limit: pagination.DefaultLimit}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a positive integer")
			return listParams{}, false
		}
		p.Limit = n
	}

	cursor, ok := pagination.ParseCursor(strings.TrimSpace(c.Query("cursor")))
	if !ok {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "cursor must be a non-negative integer")
		return listParams{}, false
	}
	p.Cursor = cursor

	return p, true
}

// parseIDParam validates the numeric :id path parameter.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// parseBoolQuery reads an optional boolean query parameter. On malformed
// input it writes the 400 response and returns ok=false.
func parseBoolQuery(c *gin.Context, name string) (*bool, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", name+" must be a boolean")
		return nil, false
	}
	return &b, true
}
