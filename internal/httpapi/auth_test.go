package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/guarded", BearerToken("s3cret"), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	engine.GET("/open", BearerToken(" "), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	cases := []struct {
		path   string
		header string
		want   int
	}{
		{"/guarded", "", http.StatusUnauthorized},
		{"/guarded", "Bearer wrong", http.StatusUnauthorized},
		{"/guarded", "s3cret", http.StatusUnauthorized},
		{"/guarded", "Bearer s3cret", http.StatusNoContent},
		{"/open", "", http.StatusNoContent},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		require.Equal(t, tc.want, resp.Code, "%s with %q", tc.path, tc.header)
	}
}
