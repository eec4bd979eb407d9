package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { RespondJSON(c, http.StatusOK, "fine", gin.H{"n": 1}) })
	r.GET("/bad", func(c *gin.Context) { RespondError(c, http.StatusBadRequest, errors.New("nope")) })
	r.GET("/boom", func(c *gin.Context) {
		RespondError(c, http.StatusInternalServerError, errors.New("disk full"))
		assert.Len(t, c.Errors, 1)
	})

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/ok", http.StatusOK, `{"status":true,"message":"fine","data":{"n":1}}`},
		{"/bad", http.StatusBadRequest, `{"status":false,"message":"nope"}`},
		{"/boom", http.StatusInternalServerError, `{"status":false,"message":"disk full"}`},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.code, w.Code)
		assert.JSONEq(t, tt.body, w.Body.String())
	}
}
