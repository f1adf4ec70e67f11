package mcp

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// UserResolver resolves the admin user behind a bearer token.
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (string, error)
}

// authMiddleware requires a bearer token on tool calls.
func authMiddleware(resolver UserResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method != "tools/call" {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, &APIError{Code: CodeUnauthorized, Message: "missing headers"}
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, &APIError{Code: CodeUnauthorized, Message: "missing bearer token"}
			}

			if user, err := resolver.ResolveUser(ctx, token); err != nil || user == "" {
				return nil, &APIError{Code: CodeUnauthorized, Message: "invalid bearer token", RecoveryHint: "POST /login for a new token", err: err}
			}
			return next(ctx, method, req)
		}
	}
}
