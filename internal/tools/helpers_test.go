// ABOUTME: Shared helpers for tool handler tests.
// ABOUTME: Builds a Service backed by a stub SMHI upstream and an in-memory blob store.

package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/skotervader/smhi-mcp/internal/smhi"
	"github.com/skotervader/smhi-mcp/internal/store"
)

// newTestService wires a Service against a stub upstream server. The
// returned server's mux serves both metobs and metfcst URLs.
func newTestService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client := smhi.NewClient(smhi.ClientConfig{
		MetobsBaseURL:  ts.URL,
		MetfcstBaseURL: ts.URL,
	})
	svc := NewService(ServiceConfig{Client: client})
	return svc, ts
}

// memBlobs is an in-memory BlobStore recording reads and writes.
type memBlobs struct {
	mu    sync.Mutex
	blobs map[string]string
	gets  int
	puts  int
}

func newMemBlobs() *memBlobs {
	return &memBlobs{blobs: make(map[string]string)}
}

func (m *memBlobs) GetCSV(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	data, ok := m.blobs[key]
	return data, ok, nil
}

func (m *memBlobs) PutCSV(_ context.Context, key, data string, _ store.BlobMeta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.blobs[key] = data
	return nil
}

var _ store.BlobStore = (*memBlobs)(nil)
