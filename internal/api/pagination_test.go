package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "/expenses", 1, 10},
		{"explicit", "/expenses?page=3&per_page=25", 3, 25},
		{"per_page capped at max", "/expenses?per_page=500", 1, 10},
		{"negative page ignored", "/expenses?page=-1", 1, 10},
		{"garbage ignored", "/expenses?page=abc&per_page=xyz", 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext(t, tt.url)
			page, perPage := pageParams(c, 10)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := newPagination(2, 10, 35)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 4, p.TotalPages)
	assert.Equal(t, int64(35), p.TotalCount)
	require.NotNil(t, p.NextPage)
	assert.Equal(t, 3, *p.NextPage)
	require.NotNil(t, p.PrevPage)
	assert.Equal(t, 1, *p.PrevPage)

	first := newPagination(1, 10, 35)
	assert.Nil(t, first.PrevPage)
	require.NotNil(t, first.NextPage)

	last := newPagination(4, 10, 35)
	assert.Nil(t, last.NextPage)

	empty := newPagination(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Nil(t, empty.NextPage)
	assert.Nil(t, empty.PrevPage)
}
