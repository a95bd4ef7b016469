package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListOptionsFromQuery(t *testing.T) {
	c, _ := newGinContext(http.MethodGet, "/findings?page=3&limit=50&sort=title&order=asc&search=%20caja%20", nil)

	opts := listOptions(c)

	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 50, opts.PageSize)
	assert.Equal(t, "title", opts.SortBy)
	assert.Equal(t, "asc", opts.SortOrder)
	assert.Equal(t, "caja", opts.Search)
}

func TestListOptionsDefaults(t *testing.T) {
	c, _ := newGinContext(http.MethodGet, "/findings?page=abc", nil)

	opts := listOptions(c)

	assert.Equal(t, 0, opts.Page)
	assert.Equal(t, 20, opts.PageSize)
}

func TestBoolQuery(t *testing.T) {
	c, _ := newGinContext(http.MethodGet, "/risks?status=false&flag=maybe", nil)

	status := boolQuery(c, "status")
	if assert.NotNil(t, status) {
		assert.False(t, *status)
	}
	assert.Nil(t, boolQuery(c, "flag"))
	assert.Nil(t, boolQuery(c, "missing"))
}

func TestAttachmentEscapesFilename(t *testing.T) {
	assert.Equal(t, `attachment; filename=acta.pdf`, attachment("acta.pdf"))
	assert.Equal(t, `attachment; filename="acta \"final\".pdf"`, attachment(`acta "final".pdf`))
}
