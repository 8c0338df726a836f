package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const profileIDKey contextKey = iota

// ProfileHeader carries a viewer preference profile over streamable HTTP.
const ProfileHeader = "X-Playbook-Profile"

// getProfileID extracts the viewer profile ID from context.
func getProfileID(ctx context.Context) string {
	v, _ := ctx.Value(profileIDKey).(string)
	return v
}

// profileMiddleware picks up the viewer's preference profile from the
// X-Playbook-Profile header (HTTP) or _meta.profile_id (stdio) so tools can
// apply hidden seasons and children's ages without an explicit argument.
func profileMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var profileID string

			if extra := req.GetExtra(); extra != nil && extra.Header != nil {
				profileID = extra.Header.Get(ProfileHeader)
			}

			// Some notifications carry nil params behind a non-nil interface,
			// so GetMeta can panic.
			if profileID == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if id, ok := meta["profile_id"].(string); ok {
								profileID = id
							}
						}
					}()
				}
			}

			if profileID != "" {
				ctx = context.WithValue(ctx, profileIDKey, profileID)
			}
			return next(ctx, method, req)
		}
	}
}
