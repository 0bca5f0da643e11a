package http

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront/internal/config"
)

func TestGinMode(t *testing.T) {
	tests := []struct {
		env     string
		current string
		want    string
	}{
		{"development", gin.DebugMode, gin.DebugMode},
		{"production", gin.DebugMode, gin.ReleaseMode},
		{"staging", gin.DebugMode, gin.ReleaseMode},
		{"production", gin.TestMode, gin.TestMode},
	}
	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.current, func(t *testing.T) {
			cfg := &config.Config{App: config.AppConfig{Environment: tt.env}}
			assert.Equal(t, tt.want, ginMode(cfg, tt.current))
		})
	}
}
