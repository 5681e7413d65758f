package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/example/useradmin/internal/auth"
	"github.com/example/useradmin/internal/config"
	"github.com/example/useradmin/internal/errs"
	"github.com/example/useradmin/internal/events"
	"github.com/example/useradmin/internal/middleware"
	"github.com/example/useradmin/internal/repository/mysql"
	"github.com/example/useradmin/internal/service"
)

// RegisterRoutes registers the public server: registration, login and the
// authenticated /me endpoint.
func RegisterRoutes(app *iris.Application, cfg *config.Config, deps *Deps) {
	app.Use(middleware.AccessLog())

	authorRepo := mysql.NewAuthorRepository(deps.DB)
	publisher := events.NewPublisher(deps.MQ)
	authorSvc := service.NewAuthorService(authorRepo, &cfg.JWT, publisher)

	ring := auth.NewConsistentHashRing(cfg.Auth.Nodes, cfg.Auth.HashReplicas)
	tokenCache := auth.NewTokenCache(deps.Redis, ring, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)

	api := app.Party("/api")

	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	credentialLimiter := middleware.NewTokenBucket(cfg.Auth.LoginBurst, cfg.Auth.LoginPerSecond)

	api.Post("/register", middleware.RateLimit(credentialLimiter), func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"message": "invalid request body"})
			return
		}
		_, err := authorSvc.Register(ctx.Request().Context(), req.Username, req.Password)
		if err != nil {
			if ve, ok := errs.AsValidation(err); ok {
				ctx.StopWithJSON(400, iris.Map{"message": "Validation failed", "errors": ve.Fields})
				return
			}
			if ce, ok := errs.AsConflict(err); ok {
				ctx.StopWithJSON(409, iris.Map{"message": "Username already taken", "field": ce.Field})
				return
			}
			ctx.StopWithJSON(500, iris.Map{"message": "Internal server error"})
			return
		}
		ctx.StatusCode(201)
		ctx.JSON(iris.Map{"message": "Registration successful"})
	})

	api.Post("/auth/login", middleware.RateLimit(credentialLimiter), func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"error": "invalid request body"})
			return
		}
		if req.Username == "" || req.Password == "" {
			ctx.StopWithJSON(401, iris.Map{"error": "Username and password are required"})
			return
		}
		token, principal, err := authorSvc.Login(ctx.Request().Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, errs.ErrUserNotFound):
				ctx.StopWithJSON(401, iris.Map{"error": "User not found"})
			case errors.Is(err, errs.ErrInvalidPassword):
				ctx.StopWithJSON(401, iris.Map{"error": "Invalid password"})
			default:
				ctx.StopWithJSON(500, iris.Map{"error": "internal error"})
			}
			return
		}
		ctx.SetCookie(&http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
		})
		ctx.JSON(iris.Map{"token": token, "user": principal})
	})

	api.Post("/auth/logout", func(ctx iris.Context) {
		ctx.SetCookie(&http.Cookie{
			Name:    middleware.SessionCookie,
			Value:   "",
			Path:    "/",
			Expires: time.Unix(0, 0),
			MaxAge:  -1,
		})
		ctx.JSON(iris.Map{"success": true})
	})

	authAPI := api.Party("/", middleware.Session(&cfg.JWT, tokenCache))

	authAPI.Get("/me", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"id":       ctx.Values().Get("user_id"),
			"username": ctx.Values().GetString("username"),
			"email":    ctx.Values().GetString("email"),
		})
	})
}
