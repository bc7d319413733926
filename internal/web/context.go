package web

import (
	"context"
	"net/http"

	"github.com/agrisurvey/portal/internal/core"
)

// WithRequestMetadata adds the client IP and User-Agent to the context so
// mutations performed during the request are attributed in the audit log.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithIPAddress(ctx, r.RemoteAddr)
	ctx = core.ContextWithUserAgent(ctx, r.Header.Get("User-Agent"))
	return ctx
}
