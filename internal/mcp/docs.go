package mcp

import (
	"context"

	"github.com/ganot/playbook/internal/docs"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `playbook answers questions about youth sports seasons: when registration
opens and closes, when play starts and ends, and which seasons fit a child's age.

Workflow:
1) list_sports to see which sports have seasons.
2) get_calendar_month for a month grid (defaults to the current month).
3) get_day_events to explain a single day; registration closings come first.
4) get_deadlines for closing-soon, upcoming and recently closed registrations.
5) parse_age_group / match_age_group to interpret age group text.

Pass ages (e.g. [6, 9]) to filter by children's ages. Seasons with age group
text that cannot be parsed are always kept.

Docs: playbook://docs/index`

const docsURIPrefix = "playbook://docs/"

func registerDocResources(server *sdkmcp.Server) {
	for _, page := range docs.All() {
		uri := docsURIPrefix + page.Slug
		server.AddResource(&sdkmcp.Resource{
			URI:         uri,
			Name:        "docs_" + page.Slug,
			Title:       page.Title,
			Description: page.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(page.Markdown)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     page.Markdown,
				}},
			}, nil
		})
	}
}
