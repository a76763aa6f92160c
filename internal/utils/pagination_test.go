package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func paramsFromQuery(query string) *PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsFromQuery("")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsClamping(t *testing.T) {
	params := paramsFromQuery("page=0&page_size=10000&order=sideways")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, MaxPageSize, params.PageSize)
	assert.Equal(t, "desc", params.Order)
}

func TestGetSkip(t *testing.T) {
	params := &PaginationParams{Page: 3, PageSize: 20}
	assert.Equal(t, 40, params.GetSkip())
}

func TestGetSearchFilter(t *testing.T) {
	params := &PaginationParams{Search: "ravi"}
	filter := params.GetSearchFilter([]string{"name", "phone"})

	or, ok := filter["$or"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, or, 2)

	empty := (&PaginationParams{}).GetSearchFilter([]string{"name"})
	assert.Empty(t, empty)
}

func TestCreatePaginationMeta(t *testing.T) {
	meta := CreatePaginationMeta(&PaginationParams{Page: 2, PageSize: 10}, 35)
	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)

	last := CreatePaginationMeta(&PaginationParams{Page: 4, PageSize: 10}, 35)
	assert.False(t, last.HasNext)
}
