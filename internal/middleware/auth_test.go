package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestJWTAuth_StripsSpoofedIdentityHeaders(t *testing.T) {
	var seenUser, seenSession string
	handler := JWTAuth(testSecret, nil, nil)(func(ctx *fasthttp.RequestCtx) {
		seenUser = string(ctx.Request.Header.Peek("X-User-ID"))
		seenSession = string(ctx.Request.Header.Peek("X-Session-ID"))
	})

	// A valid token without identity claims must not let the client's
	// own headers through.
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{}))
	ctx.Request.Header.Set("X-User-ID", "attacker")
	ctx.Request.Header.Set("X-Session-ID", "attacker-session")
	handler(ctx)

	if seenUser != "" {
		t.Errorf("X-User-ID = %q, want empty", seenUser)
	}
	if seenSession != "" {
		t.Errorf("X-Session-ID = %q, want empty", seenSession)
	}
}

func TestJWTAuth_ClaimsOverrideClientHeaders(t *testing.T) {
	var seenUser string
	handler := JWTAuth(testSecret, nil, nil)(func(ctx *fasthttp.RequestCtx) {
		seenUser = string(ctx.Request.Header.Peek("X-User-ID"))
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"user_id": "user-1"}))
	ctx.Request.Header.Set("X-User-ID", "attacker")
	handler(ctx)

	if seenUser != "user-1" {
		t.Errorf("X-User-ID = %q, want %q", seenUser, "user-1")
	}
}

func TestJWTAuth_RejectsMissingToken(t *testing.T) {
	called := false
	handler := JWTAuth(testSecret, nil, nil)(func(ctx *fasthttp.RequestCtx) { called = true })

	ctx := &fasthttp.RequestCtx{}
	handler(ctx)

	if called {
		t.Error("handler ran without a token")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Errorf("status = %d, want %d", ctx.Response.StatusCode(), fasthttp.StatusUnauthorized)
	}
}
