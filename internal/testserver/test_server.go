package testserver

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ganot/playbook/internal/app"
	"github.com/ganot/playbook/internal/metrics"
	"github.com/ganot/playbook/internal/sqlite"
	"github.com/stretchr/testify/require"
)

// AdminPassword is the admin password every test server accepts.
const AdminPassword = "letmein"

// Today is the fixed date test servers compute views against.
var Today = time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)

type TestServer struct {
	Server  *httptest.Server
	App     *app.App
	Metrics *metrics.Metrics
}

// New starts an HTTP server over a private in-memory database with MCP
// mounted at /mcp.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	m := metrics.New()
	a := app.New(db, app.Options{
		Location:      time.UTC,
		RecentWindow:  30,
		AdminPassword: AdminPassword,
		SessionTTL:    time.Hour,
		Version:       "test",
		Metrics:       m,
	})
	a.Browse.Now = func() time.Time { return Today }

	server := httptest.NewServer(a.Handler(app.HTTPOptions{MountMCP: true}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, App: a, Metrics: m}
}

// URL joins path onto the server's base URL.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
