package server

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/example/useradmin/internal/auth"
	"github.com/example/useradmin/internal/config"
	"github.com/example/useradmin/internal/events"
	"github.com/example/useradmin/internal/middleware"
	"github.com/example/useradmin/internal/repository/mysql"
	"github.com/example/useradmin/internal/service"
)

type userRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterAdminRoutes registers the admin server: the user resource CRUD.
// Runs on its own port, separate from the public server.
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config, deps *Deps) {
	app.Use(middleware.AccessLog())

	userRepo := mysql.NewUserRepository(deps.DB)
	publisher := events.NewPublisher(deps.MQ)
	userSvc := service.NewUserService(userRepo, publisher)

	ring := auth.NewConsistentHashRing(cfg.Auth.Nodes, cfg.Auth.HashReplicas)
	tokenCache := auth.NewTokenCache(deps.Redis, ring, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)

	api := app.Party("/api")

	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	users := api.Party("/users", middleware.Session(&cfg.JWT, tokenCache))

	// paged listing, ascending by id
	users.Get("/", func(ctx iris.Context) {
		pageNum := ctx.URLParamIntDefault("pageNum", 0)
		rowsPerPage := ctx.URLParamIntDefault("rowsPerPage", service.DefaultRowsPerPage)
		page, err := userSvc.List(ctx.Request().Context(), pageNum, rowsPerPage)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(page)
	})

	users.Post("/", func(ctx iris.Context) {
		var req userRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"error": "invalid request body"})
			return
		}
		if req.Username == "" || req.Email == "" {
			ctx.StopWithJSON(400, iris.Map{"error": "Username and email are required"})
			return
		}
		u, err := userSvc.Create(ctx.Request().Context(), req.Username, req.Email)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.StatusCode(201)
		ctx.JSON(iris.Map{"success": true, "data": u})
	})

	users.Get("/{id:int64}", func(ctx iris.Context) {
		id := ctx.Params().GetInt64Default("id", 0)
		u, err := userSvc.ReadOne(ctx.Request().Context(), id)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(u)
	})

	// whole-record replace, both fields required
	users.Put("/{id:int64}", func(ctx iris.Context) {
		id := ctx.Params().GetInt64Default("id", 0)
		var req userRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"error": "invalid request body"})
			return
		}
		if req.Username == "" || req.Email == "" {
			ctx.StopWithJSON(400, iris.Map{"error": "All fields are required"})
			return
		}
		u, err := userSvc.Update(ctx.Request().Context(), id, req.Username, req.Email)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(u)
	})

	users.Delete("/{id:int64}", func(ctx iris.Context) {
		id := ctx.Params().GetInt64Default("id", 0)
		if err := userSvc.Delete(ctx.Request().Context(), id); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"success": true, "message": "User deleted"})
	})

	// update-if-exists else create, last write wins
	users.Put("/{id:int64}/upsert", func(ctx iris.Context) {
		id := ctx.Params().GetInt64Default("id", 0)
		var req userRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"error": "invalid request body"})
			return
		}
		u, err := userSvc.Upsert(ctx.Request().Context(), id, req.Username, req.Email)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(u)
	})
}
