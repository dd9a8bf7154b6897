package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIP(t *testing.T) {
	h := HashIP("192.168.1.1")
	// 前8字节的十六进制表示
	assert.Len(t, h, 16)
	// 同一输入结果稳定，不同输入结果不同
	assert.Equal(t, h, HashIP("192.168.1.1"))
	assert.NotEqual(t, h, HashIP("192.168.1.2"))
}

func TestCountFailure(t *testing.T) {
	InitCache()

	assert.Equal(t, 1, CountFailure("login:test", time.Minute))
	assert.Equal(t, 2, CountFailure("login:test", time.Minute))
	assert.Equal(t, 3, CountFailure("login:test", time.Minute))

	// 不同键互不影响
	assert.Equal(t, 1, CountFailure("login:other", time.Minute))
}

func TestCacheSetGetDelete(t *testing.T) {
	InitCache()

	CacheSet("key", "value", time.Minute)
	v, ok := CacheGet("key")
	require.True(t, ok)
	assert.Equal(t, "value", v)

	CacheDelete("key")
	_, ok = CacheGet("key")
	assert.False(t, ok)
}

func responseBody(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestResponseHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Success(c, gin.H{"id": 1})

		assert.Equal(t, 200, w.Code)
		resp := responseBody(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, "success", resp.Message)
		assert.NotNil(t, resp.Data)
	})

	t.Run("Created", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Created(c, "已创建", nil)

		assert.Equal(t, 201, w.Code)
		resp := responseBody(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, "已创建", resp.Message)
	})

	t.Run("错误响应带默认消息", func(t *testing.T) {
		tests := []struct {
			name string
			fn   func(*gin.Context, string)
			code int
		}{
			{"BadRequest", BadRequest, 400},
			{"Unauthorized", Unauthorized, 401},
			{"Forbidden", Forbidden, 403},
			{"NotFound", NotFound, 404},
			{"Conflict", Conflict, 409},
			{"InternalServerError", InternalServerError, 500},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := httptest.NewRecorder()
				c, _ := gin.CreateTestContext(w)
				tt.fn(c, "")

				assert.Equal(t, tt.code, w.Code)
				resp := responseBody(t, w)
				assert.False(t, resp.Success)
				assert.Equal(t, tt.code, resp.Code)
				assert.NotEmpty(t, resp.Message)
			})
		}
	})
}
