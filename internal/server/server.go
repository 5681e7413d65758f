package server

import (
	"errors"
	"strings"

	"github.com/kataras/iris/v12"
	radix "github.com/mediocregopher/radix/v3"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"github.com/example/useradmin/internal/errs"
)

// Deps are the externally owned handles the routers wire into services.
// They are constructed once in main and injected; nothing here is a
// package global.
type Deps struct {
	DB    *gorm.DB
	Redis radix.Client
	MQ    *amqp.Connection
}

// fail translates a service error into the HTTP response. Anything outside
// the closed error set becomes a generic 500; engine details never reach
// the client.
func fail(ctx iris.Context, err error) {
	if ve, ok := errs.AsValidation(err); ok {
		ctx.StopWithJSON(400, iris.Map{"error": "Validation failed", "errors": ve.Fields})
		return
	}
	if ce, ok := errs.AsConflict(err); ok {
		msg := strings.ToUpper(ce.Field[:1]) + ce.Field[1:] + " already exists"
		ctx.StopWithJSON(409, iris.Map{"error": msg, "field": ce.Field})
		return
	}
	if errors.Is(err, errs.ErrNotFound) {
		ctx.StopWithJSON(404, iris.Map{"error": "User not found"})
		return
	}
	ctx.StopWithJSON(500, iris.Map{"error": "internal error"})
}
