package http

import (
	"errors"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sazonlab/campus-bff/internal/infrastructure/auth"
	"github.com/sazonlab/campus-bff/internal/progress"
)

// HandleProgressFeed push completion events for the authenticated learner
// over the socket. The read loop only exists to observe the client closing
// the connection, inbound frames are discarded.
func HandleProgressFeed(broker *progress.Broker, jwtUtil *auth.JWTUtil) func(echo.Context, *websocket.Conn) error {
	return func(c echo.Context, conn *websocket.Conn) error {
		claims := jwtUtil.GetContextToken(c)
		if claims == nil {
			return errors.New("no session token")
		}

		sub := broker.Subscribe(claims.UID)
		defer broker.Unsubscribe(sub)

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case event, ok := <-sub.C:
				if !ok {
					return errors.New("subscription closed")
				}
				if err := conn.WriteJSON(event); err != nil {
					return err
				}
			case <-closed:
				return errors.New("connection closed")
			}
		}
	}
}
