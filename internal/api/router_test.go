package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ona-ui/catalog/pkg/logger"
)

func TestMain(m *testing.M) {
	_, err := logger.Init("info", "json")
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

// Stored preview images must be reachable at the URLs DiskStore hands out.
func TestRouterServesUploadedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preview.png"), []byte("png-bytes"), 0o644))

	router := NewRouter(Dependencies{
		RateLimitRPS:   100,
		RateLimitBurst: 10,
		UploadDir:      dir,
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/preview.png", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "png-bytes", rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/missing.png", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}
