package functional_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ganot/playbook/internal/mcp"
	"github.com/ganot/playbook/internal/testserver"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// headerTransport adds a fixed header to every request.
type headerTransport struct {
	key, value string
	base       http.RoundTripper
}

func (h headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set(h.key, h.value)
	return h.base.RoundTrip(r)
}

func connectMCP(t *testing.T, ts *testserver.TestServer, profileID string) *sdkmcp.ClientSession {
	t.Helper()

	httpClient := http.DefaultClient
	if profileID != "" {
		httpClient = &http.Client{Transport: headerTransport{
			key:   mcp.ProfileHeader,
			value: profileID,
			base:  http.DefaultTransport,
		}}
	}

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "functional-test", Version: "v0"}, nil)
	cs, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.URL("/mcp"),
		HTTPClient: httpClient,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func callTool(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any, out any) *sdkmcp.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text.Text), out))
	}
	return res
}

func TestMCP_StreamableHTTP(t *testing.T) {
	ts := testserver.New(t)
	seed(t, ts)
	cs := connectMCP(t, ts, "")

	tools, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 7)

	var sports mcp.SportsResult
	callTool(t, cs, "list_sports", map[string]any{}, &sports)
	require.Equal(t, []string{"Baseball", "Soccer"}, sports.Sports)

	var deadlines mcp.DeadlinesResult
	callTool(t, cs, "get_deadlines", map[string]any{}, &deadlines)
	require.Equal(t, "2026-03-03", deadlines.Today)
	require.Len(t, deadlines.ClosingSoon, 1)
	require.Equal(t, "2 days left", deadlines.ClosingSoon[0].Label)

	var month struct {
		Seasons []struct {
			Name string `json:"name"`
		} `json:"seasons"`
	}
	callTool(t, cs, "get_calendar_month", map[string]any{"year": 2026, "month": 3, "ages": []int{11}}, &month)
	require.Len(t, month.Seasons, 1)
	require.Equal(t, "Spring 2026", month.Seasons[0].Name)

	var apiErr mcp.APIError
	res := callTool(t, cs, "get_day_events", map[string]any{"year": 2026, "month": 2, "day": 30}, &apiErr)
	require.True(t, res.IsError)
	require.Equal(t, "INVALID_DAY", apiErr.Code)

	resources, err := cs.ListResources(context.Background(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, resources.Resources)
}

func TestMCP_ProfileHeader(t *testing.T) {
	ts := testserver.New(t)
	ids := seed(t, ts)

	p, err := ts.App.Preferences.Create(context.Background())
	require.NoError(t, err)
	_, err = ts.App.Preferences.ToggleSeason(context.Background(), p.ID, ids["Spring 2026"])
	require.NoError(t, err)

	cs := connectMCP(t, ts, p.ID)

	var month struct {
		Seasons []struct {
			Name string `json:"name"`
		} `json:"seasons"`
	}
	callTool(t, cs, "get_calendar_month", map[string]any{"year": 2026, "month": 3}, &month)
	require.Len(t, month.Seasons, 1)
	require.Equal(t, "Spring Rec", month.Seasons[0].Name)
}
