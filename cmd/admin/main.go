package main

import (
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/useradmin/internal/config"
	"github.com/example/useradmin/internal/infra/mq"
	"github.com/example/useradmin/internal/infra/redis"
	"github.com/example/useradmin/internal/logging"
	"github.com/example/useradmin/internal/repository/mysql"
	"github.com/example/useradmin/internal/server"
)

func main() {
	cfg, err := config.Load("./config")
	if err != nil {
		panic(err)
	}

	if err := logging.Init(false); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	db, err := mysql.Open(&cfg.MySQL)
	if err != nil {
		zap.L().Fatal("mysql open failed", zap.Error(err))
	}

	redisClient, err := redis.Dial(&cfg.Redis)
	if err != nil {
		zap.L().Warn("redis unavailable, token cache disabled", zap.Error(err))
		redisClient = nil
	}

	mqConn, err := mq.Dial(&cfg.RabbitMQ)
	if err != nil {
		zap.L().Warn("rabbitmq unavailable, audit events disabled", zap.Error(err))
		mqConn = nil
	}

	app := iris.New()
	server.RegisterAdminRoutes(app, cfg, &server.Deps{DB: db, Redis: redisClient, MQ: mqConn})

	addr := cfg.AdminServer.Addr()
	zap.L().Info("admin server listening", zap.String("addr", addr))
	if err := app.Run(iris.Addr(addr), iris.WithoutServerError(iris.ErrServerClosed)); err != nil {
		zap.L().Fatal("admin server failed", zap.Error(err))
	}
}
