package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsTestOptions() CORSOptions {
	return CORSOptions{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowCredentials: true,
	}
}

func TestCORS_AllowsListedOrigin(t *testing.T) {
	var reachedNext bool
	handler := CORS(corsTestOptions())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reachedNext = true
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.True(t, reachedNext)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Values("Vary"), "Origin")
}

func TestCORS_IgnoresUnlistedOrigin(t *testing.T) {
	handler := CORS(corsTestOptions())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	var reachedNext bool
	handler := CORS(corsTestOptions())(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		reachedNext = true
	}))

	r := httptest.NewRequest(http.MethodOptions, "/render", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.False(t, reachedNext)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORS_PlainOptionsReachesRouter(t *testing.T) {
	var reachedNext bool
	handler := CORS(corsTestOptions())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reachedNext = true
		w.WriteHeader(http.StatusOK)
	}))

	// No Access-Control-Request-Method header: not a preflight.
	r := httptest.NewRequest(http.MethodOptions, "/render", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.True(t, reachedNext)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCompression_CompressesJSONResponses(t *testing.T) {
	payload := `{"renders":[` + strings.Repeat(`{"id":"abc"},`, 100) + `{"id":"end"}]}`
	handler := Compression(CompressionConfig{Level: gzip.DefaultCompression})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, payload)
		}))

	r := httptest.NewRequest(http.MethodGet, "/history", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	compressedLen := w.Body.Len()
	assert.Less(t, compressedLen, len(payload))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	decompressed, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, payload, string(decompressed))
}

func TestCompression_LeavesVideoAlone(t *testing.T) {
	handler := Compression(CompressionConfig{Level: gzip.DefaultCompression})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "video/mp4")
			_, _ = w.Write([]byte("binary-ish video payload"))
		}))

	r := httptest.NewRequest(http.MethodGet, "/renders/render_x.mp4", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "binary-ish video payload", w.Body.String())
}

func TestCompression_HonorsDeclinedEncoding(t *testing.T) {
	handler := Compression(CompressionConfig{Level: gzip.DefaultCompression})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"status":"ok"}`)
		}))

	// q=0 means the client explicitly refuses gzip.
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.Header.Set("Accept-Encoding", "gzip;q=0")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, `{"status":"ok"}`, w.Body.String())
}

func TestCompression_SkipsHeadRequests(t *testing.T) {
	handler := Compression(CompressionConfig{Level: gzip.DefaultCompression})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
		}))

	r := httptest.NewRequest(http.MethodHead, "/health", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
}

func TestCompression_PreservesExistingEncoding(t *testing.T) {
	handler := Compression(CompressionConfig{Level: gzip.DefaultCompression})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Content-Encoding", "br")
			_, _ = io.WriteString(w, "already compressed")
		}))

	r := httptest.NewRequest(http.MethodGet, "/history", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))
	assert.Equal(t, "already compressed", w.Body.String())
}
