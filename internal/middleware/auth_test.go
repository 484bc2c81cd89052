package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	return signed
}

func TestJWTAuth(t *testing.T) {
	mw := JWTAuth(testSecret, nil)

	run := func(prepare func(ctx *fasthttp.RequestCtx)) (called bool, actor string, status int) {
		ctx := &fasthttp.RequestCtx{}
		prepare(ctx)
		handler := mw(func(ctx *fasthttp.RequestCtx) {
			called = true
			actor = string(ctx.Request.Header.Peek(ActorHeader))
		})
		handler(ctx)
		return called, actor, ctx.Response.StatusCode()
	}

	t.Run("missing token rejected", func(t *testing.T) {
		called, _, status := run(func(ctx *fasthttp.RequestCtx) {})
		if called {
			t.Error("handler ran without a token")
		}
		if status != fasthttp.StatusUnauthorized {
			t.Errorf("status = %d, want 401", status)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		called, _, status := run(func(ctx *fasthttp.RequestCtx) {
			ctx.Request.Header.Set("Authorization", "Bearer not-a-token")
		})
		if called {
			t.Error("handler ran with a garbage token")
		}
		if status != fasthttp.StatusUnauthorized {
			t.Errorf("status = %d, want 401", status)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u1"}).
			SignedString([]byte("other-secret"))
		if err != nil {
			t.Fatalf("signing failed: %v", err)
		}
		called, _, _ := run(func(ctx *fasthttp.RequestCtx) {
			ctx.Request.Header.Set("Authorization", "Bearer "+forged)
		})
		if called {
			t.Error("handler ran with a token signed by another key")
		}
	})

	t.Run("actor id comes from the token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"user_id": "u1"})
		called, actor, _ := run(func(ctx *fasthttp.RequestCtx) {
			ctx.Request.Header.Set("Authorization", "Bearer "+token)
			ctx.Request.Header.Set(ActorHeader, "spoofed")
		})
		if !called {
			t.Fatal("handler did not run for a valid token")
		}
		if actor != "u1" {
			t.Errorf("actor = %q, want u1", actor)
		}
	})

	t.Run("spoofed header stripped when token has no user id", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"iss": "taskforge"})
		called, actor, _ := run(func(ctx *fasthttp.RequestCtx) {
			ctx.Request.Header.Set("Authorization", "Bearer "+token)
			ctx.Request.Header.Set(ActorHeader, "spoofed")
		})
		if !called {
			t.Fatal("handler did not run for a valid token")
		}
		if actor != "" {
			t.Errorf("client-supplied actor id leaked through: %q", actor)
		}
	})
}
