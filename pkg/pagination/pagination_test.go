package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func parseQuery(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/requests"+query, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{name: "defaults", query: "", want: Params{Page: 1, Limit: 20, Offset: 0}},
		{name: "explicit page and limit", query: "?page=3&limit=10", want: Params{Page: 3, Limit: 10, Offset: 20}},
		{name: "limit clamped to max", query: "?limit=500", want: Params{Page: 1, Limit: 100, Offset: 0}},
		{name: "zero limit falls back", query: "?limit=0", want: Params{Page: 1, Limit: 20, Offset: 0}},
		{name: "negative page falls back", query: "?page=-2", want: Params{Page: 1, Limit: 20, Offset: 0}},
		{name: "non-numeric values fall back", query: "?page=abc&limit=xyz", want: Params{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQuery(t, tt.query))
		})
	}
}
