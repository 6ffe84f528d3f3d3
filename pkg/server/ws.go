package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const wsInterval = 50 * time.Millisecond

// streamWS pushes JPEG frames as binary messages. Same pacing and
// placeholder behavior as the multipart stream, for clients that would
// rather open a socket than parse multipart.
func (s *Server) streamWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("websocket upgrade: %s", err)
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsInterval)
	defer ticker.Stop()

	for {
		data, err := s.str.EncodeLatest()
		if err != nil {
			logger.Warnf("failed to encode image: %s", err)
		} else if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			return
		}

		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
