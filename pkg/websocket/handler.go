package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboard origins are validated by the CORS middleware in front of
	// this handler.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades a dashboard session to the live booking event stream.
// identify extracts the session's user id from the request context.
func ServeWS(hub *Hub, identify func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := NewClient(hub, conn, identify(c))
		go client.Start()
	}
}
