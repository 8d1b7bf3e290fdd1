//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=events_get_test
package events_get

import (
	gorillaws "github.com/gorilla/websocket"
	"taxi-dispatch/internal/gateway/websocket"
	"taxi-dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Hub interface {
	Serve(conn *gorillaws.Conn, room websocket.Room)
}
