package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/httptest"

	"github.com/example/useradmin/internal/auth"
	"github.com/example/useradmin/internal/config"
)

func guardedApp(jwtCfg *config.JWTConfig) *iris.Application {
	app := iris.New()
	app.Get("/guarded", Session(jwtCfg, nil), func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"username": ctx.Values().GetString("username"),
			"email":    ctx.Values().GetString("email"),
		})
	})
	return app
}

func TestSessionMissingToken(t *testing.T) {
	jwtCfg := &config.JWTConfig{Secret: "s"}
	e := httptest.New(t, guardedApp(jwtCfg))

	e.GET("/guarded").Expect().Status(401)
}

func TestSessionInvalidToken(t *testing.T) {
	jwtCfg := &config.JWTConfig{Secret: "s"}
	e := httptest.New(t, guardedApp(jwtCfg))

	e.GET("/guarded").WithHeader("Authorization", "garbage").Expect().Status(401)
}

func TestSessionHeaderToken(t *testing.T) {
	jwtCfg := &config.JWTConfig{Secret: "s"}
	tok, err := auth.GenerateToken(jwtCfg, 5, "admin_1", "admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	e := httptest.New(t, guardedApp(jwtCfg))
	e.GET("/guarded").WithHeader("Authorization", tok).
		Expect().Status(200).Body().Contains("admin_1").Contains("admin@example.com")
}

func TestSessionExpiredToken(t *testing.T) {
	jwtCfg := &config.JWTConfig{Secret: "s"}

	// sign a token that expired a minute ago with the right secret
	now := time.Now()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		UserID:   5,
		Username: "late_user",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		},
	}).SignedString([]byte(jwtCfg.Secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	e := httptest.New(t, guardedApp(jwtCfg))
	e.GET("/guarded").WithHeader("Authorization", tok).Expect().Status(401)
}

func TestSessionCookieToken(t *testing.T) {
	jwtCfg := &config.JWTConfig{Secret: "s"}
	tok, err := auth.GenerateToken(jwtCfg, 5, "cookie_user", "c@example.com")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	e := httptest.New(t, guardedApp(jwtCfg))
	e.GET("/guarded").WithCookie(SessionCookie, tok).
		Expect().Status(200).Body().Contains("cookie_user")
}
