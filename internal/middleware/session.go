package middleware

import (
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/useradmin/internal/auth"
	"github.com/example/useradmin/internal/config"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "token"

// Session builds the middleware guarding authenticated routes. It accepts
// the token from the Authorization header or the session cookie, consults
// the claims cache first and falls back to a full parse. Identity is
// rebuilt from the claims alone; the author store is never queried here.
func Session(jwtCfg *config.JWTConfig, cache *auth.TokenCache) iris.Handler {
	return func(ctx iris.Context) {
		token := ctx.GetHeader("Authorization")
		if token == "" {
			token = ctx.GetCookie(SessionCookie)
		}
		if token == "" {
			ctx.StopWithJSON(401, iris.Map{"error": "missing token"})
			return
		}

		var claims *auth.Claims
		if cache != nil {
			cached, hit, err := cache.Get(ctx.Request().Context(), token)
			if err != nil {
				zap.L().Warn("token cache read failed", zap.Error(err))
			} else if hit {
				if cached.Expired(time.Now()) {
					// stale entry; evict and fall through to the
					// full parse, which rejects the token
					_ = cache.Delete(ctx.Request().Context(), token)
				} else {
					claims = cached
				}
			}
		}
		if claims == nil {
			parsed, err := auth.ParseToken(jwtCfg, token)
			if err != nil {
				ctx.StopWithJSON(401, iris.Map{"error": "invalid token"})
				return
			}
			claims = parsed
			if cache != nil {
				if err := cache.Set(ctx.Request().Context(), token, claims); err != nil {
					zap.L().Warn("token cache write failed", zap.Error(err))
				}
			}
		}

		ctx.Values().Set("user_id", claims.UserID)
		ctx.Values().Set("username", claims.Username)
		ctx.Values().Set("email", claims.Email)
		ctx.Next()
	}
}
