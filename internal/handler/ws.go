package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsMessage struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// ChatSocket godoc
// @Summary      Streamed chat over a websocket
// @Description  Each inbound JSON frame {"message": "..."} gets one reply frame. The session id is assigned on connect and echoed in every reply.
// @Tags         chat
// @Router       /ws/chat [get]
func (h *Handler) ChatSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// One session per connection unless the client pins its own id.
	sessionID := uuid.NewString()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read failed: %v", err)
			}
			return
		}
		if msg.SessionID != "" {
			sessionID = msg.SessionID
		}

		reply, err := h.assistant.Ask(c.Request.Context(), sessionID, msg.Message)
		if err != nil {
			if werr := conn.WriteJSON(gin.H{"session_id": sessionID, "error": err.Error()}); werr != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(gin.H{"session_id": sessionID, "reply": reply}); err != nil {
			return
		}
	}
}
