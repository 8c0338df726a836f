package functional_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"testing"

	"github.com/ganot/playbook/internal/app"
	"github.com/ganot/playbook/internal/testserver"
	"github.com/stretchr/testify/require"
)

type client struct {
	t    *testing.T
	ts   *testserver.TestServer
	http *http.Client
}

func newClient(t *testing.T, ts *testserver.TestServer) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, ts: ts, http: &http.Client{Jar: jar}}
}

// do sends a request and decodes a JSON response into out when out is
// non-nil. It returns the status code.
func (c *client) do(method, path, body string, out any) int {
	c.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, c.ts.URL(path), r)
	require.NoError(c.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func seed(t *testing.T, ts *testserver.TestServer) map[string]int64 {
	t.Helper()
	f, err := os.Open("../testdata/leagues.yaml")
	require.NoError(t, err)
	defer f.Close()

	file, err := app.LoadSeed(f)
	require.NoError(t, err)
	_, err = ts.App.Seed(context.Background(), file)
	require.NoError(t, err)

	seasons, err := ts.App.Browse.Seasons(context.Background(), browseAll)
	require.NoError(t, err)
	ids := map[string]int64{}
	for _, s := range seasons {
		ids[s.Name] = s.ID
	}
	return ids
}
