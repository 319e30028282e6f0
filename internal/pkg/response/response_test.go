package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	var resp Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func TestSuccess(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		Success(c, gin.H{"key": "value"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "success", resp.Message)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", data["key"])
}

func TestSuccessWithMessage(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		SuccessWithMessage(c, "操作成功", gin.H{"result": true})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "操作成功", resp.Message)
}

func TestSuccessPage(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		items := []string{"item1", "item2"}
		SuccessPage(c, 100, 1, 10, items)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(100), data["total"])
	assert.Equal(t, float64(1), data["page"])
	assert.Equal(t, float64(10), data["page_size"])

	items, ok := data["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestError_DefaultMessage(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		Error(c, CodeVipRequired, "")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 业务错误统一 200，错误码在 body 里
	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeVipRequired, resp.Code)
	assert.Equal(t, "VIP 内容，需订阅后阅读", resp.Message)
}

func TestError_CustomMessage(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		ParamError(c, "月数不合法")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeParamError, resp.Code)
	assert.Equal(t, "月数不合法", resp.Message)
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name     string
		handler  func(c *gin.Context)
		wantCode int
	}{
		{"auth", func(c *gin.Context) { AuthError(c, "") }, CodeAuthFailed},
		{"permission", func(c *gin.Context) { PermissionError(c, "") }, CodePermissionDenied},
		{"not found", func(c *gin.Context) { NotFoundError(c, "") }, CodeResourceNotFound},
		{"vip required", func(c *gin.Context) { VipRequiredError(c, "") }, CodeVipRequired},
		{"duplicate", func(c *gin.Context) { DuplicateError(c, "") }, CodeDuplicateAction},
		{"server", func(c *gin.Context) { ServerError(c, "") }, CodeServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", tc.handler)

			req := httptest.NewRequest("GET", "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			resp := parseResponse(t, w)
			assert.Equal(t, tc.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
