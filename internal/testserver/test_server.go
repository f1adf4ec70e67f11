package testserver

import (
	"net/http/httptest"
	"testing"

	"github.com/ganot/stageboard/internal/domain/board"
	"github.com/ganot/stageboard/internal/jsonfile"
	"github.com/ganot/stageboard/internal/mcp"
	"github.com/ganot/stageboard/internal/transport"
	"github.com/stretchr/testify/require"
)

// Admin credentials accepted by servers built with WithAuth.
const (
	AdminUser     = "admin"
	AdminPassword = "password"
)

type TestServer struct {
	Server   *httptest.Server
	Store    *jsonfile.Store
	Service  *board.Service
	Sessions *transport.Sessions
}

type config struct {
	requireAuth bool
}

// Option customizes the test server.
type Option func(*config)

// WithAuth guards mutating routes with admin bearer tokens.
func WithAuth() Option {
	return func(c *config) { c.requireAuth = true }
}

// New starts the full HTTP stack over a jsonfile store in a temp dir.
func New(t *testing.T, opts ...Option) *TestServer {
	t.Helper()

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	store, err := jsonfile.Open(t.TempDir())
	require.NoError(t, err)

	svc := board.NewService(store, nil)
	sessions := transport.NewSessions(AdminUser, AdminPassword)

	mcpServer := mcp.NewServer(mcp.Config{
		Service:       svc,
		Resolver:      sessions,
		AuthEnabled:   cfg.requireAuth,
		TransportMode: "http",
	})
	router := transport.NewServer(svc, transport.Options{
		Sessions:    sessions,
		RequireAuth: cfg.requireAuth,
		CORSOrigins: []string{"*"},
		MCP:         mcp.NewHTTPHandler(mcpServer),
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = store.Close()
	})

	return &TestServer{
		Server:   server,
		Store:    store,
		Service:  svc,
		Sessions: sessions,
	}
}

// URL joins path onto the server base URL.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
