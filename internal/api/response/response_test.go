package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidshare-go/pkg/contract"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestPaginatedMiddlePage(t *testing.T) {
	c, w := newContext("http://api.test/api/videos?page=2&page_size=2&q=cat")
	Paginated(c, 2, 2, []int{3, 4}, 5)

	require.Equal(t, http.StatusOK, w.Code)
	env, err := contract.Decode[contract.APIResponse[int]](w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, env.Results)
	assert.Equal(t, int64(5), env.Count)
	assert.Equal(t, "http://api.test/api/videos?page=3&page_size=2&q=cat", env.Next.OrElse(""))
	assert.Equal(t, "http://api.test/api/videos?page=1&page_size=2&q=cat", env.Previous.OrElse(""))
}

func TestPaginatedSinglePageOmitsLinks(t *testing.T) {
	c, w := newContext("/api/tags")
	Paginated(c, 1, 20, []string{"a"}, 1)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "next")
	assert.NotContains(t, raw, "previous")
	assert.Equal(t, float64(1), raw["count"])
}

func TestPaginatedEmptyResults(t *testing.T) {
	c, w := newContext("/api/videos?page=3")
	Paginated[int](c, 3, 20, nil, 0)

	assert.JSONEq(t, `{"results":[],"count":0,"previous":"http://example.com/api/videos?page=2"}`, w.Body.String())
}

func TestPaginatedRejectsInconsistentCount(t *testing.T) {
	c, w := newContext("/api/videos")
	Paginated(c, 1, 20, []int{1, 2}, 1)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPageURLHonoursForwardedProto(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/social/uploads?page=1", nil)
	r.Host = "vidshare.io"
	r.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://vidshare.io/api/social/uploads?page=4", PageURL(r, 4))
}

func TestSchemaErrorMapping(t *testing.T) {
	_, err := contract.Decode[contract.LoginCredentials]([]byte(`{"email":"a@b.c"}`))
	require.Error(t, err)

	c, w := newContext("/")
	assert.True(t, SchemaError(c, err))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "MissingRequiredField", body.Error.Type)
	assert.Contains(t, body.Error.Message, "password")

	c, _ = newContext("/")
	assert.False(t, SchemaError(c, assert.AnError))
}

func TestConflict(t *testing.T) {
	c, w := newContext("/")
	Conflict(c, "exists")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":{"code":409,"message":"exists","type":"Conflict"}}`, w.Body.String())
}

func TestMultiStatusCarriesPartialData(t *testing.T) {
	c, w := newContext("/api/ai/batch-transcribe")
	MultiStatus(c, "部分转写任务提交失败: 1/2", []int{7})

	require.Equal(t, http.StatusMultiStatus, w.Code)
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    []int  `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, []int{7}, body.Data)
}
