//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// TestMain terminates the shared container after the package's tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	code := m.Run()

	sharedContainerMu.Lock()
	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		_ = sharedContainer.Terminate(ctx)
		cancel()
	}
	sharedContainerMu.Unlock()

	os.Exit(code)
}
