package handler

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

// listOptions reads page, limit, sort, order and search from the query string.
func listOptions(c *gin.Context) models.ListOptions {
	opts := models.ListOptions{
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		opts.PageSize = limit
	}
	return opts
}

// boolQuery parses an optional boolean filter; absent or malformed values yield nil.
func boolQuery(c *gin.Context, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

func invalidPayload(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
}

// attachment builds a Content-Disposition value, escaping the filename.
func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
