package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/vibevent/vibevent-api/internal/constants"
)

func queryContext(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		page   int
		limit  int
		offset int
	}{
		{"defaults", "", 1, constants.DefaultPageSize, 0},
		{"explicit", "page=3&limit=10", 3, 10, 20},
		{"page below minimum", "page=0&limit=5", 1, 5, 0},
		{"limit above maximum", "page=2&limit=1000", 2, constants.DefaultPageSize, constants.DefaultPageSize},
		{"garbage", "page=x&limit=y", 1, constants.DefaultPageSize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GetPaginationParams(queryContext(tt.query))
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestParseOptionalTime(t *testing.T) {
	v, err := ParseOptionalTime(queryContext("before=2030-01-02T03:04:05%2B02:00"), "before")
	assert.NoError(t, err)
	assert.Equal(t, 1, v.Hour())

	v, err = ParseOptionalTime(queryContext(""), "before")
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = ParseOptionalTime(queryContext("before=yesterday"), "before")
	assert.Error(t, err)
}
