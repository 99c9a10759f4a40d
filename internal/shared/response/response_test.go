package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name  string
		query string
		want  []int
		meta  PaginationMeta
	}{
		{name: "defaults", query: "", want: items, meta: PaginationMeta{Total: 5, TotalPages: 1, Page: 1, PageSize: 10}},
		{name: "second page", query: "?page=2&page_size=2", want: []int{3, 4}, meta: PaginationMeta{Total: 5, TotalPages: 3, Page: 2, PageSize: 2}},
		{name: "past the end", query: "?page=9&page_size=2", want: []int{}, meta: PaginationMeta{Total: 5, TotalPages: 3, Page: 9, PageSize: 2}},
		{name: "garbage falls back", query: "?page=x&page_size=-1", want: items, meta: PaginationMeta{Total: 5, TotalPages: 1, Page: 1, PageSize: 10}},
		{name: "page size capped", query: "?page_size=1000", want: items, meta: PaginationMeta{Total: 5, TotalPages: 1, Page: 1, PageSize: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)

			got, meta := Paginate(c, items)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.meta, meta)
		})
	}
}

func TestError_EchoesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ContextRequestID, "req-7")

	Error(c, http.StatusConflict, "CONFLICT", "overlaps", nil)

	var env struct {
		Ok    bool      `json:"ok"`
		Error ErrorBody `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Ok)
	assert.Equal(t, "CONFLICT", env.Error.Code)
	assert.Equal(t, "req-7", env.Error.RequestID)
	assert.Equal(t, http.StatusConflict, w.Code)
}
