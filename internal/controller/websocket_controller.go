package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/legalmoves-backend/internal/service"
	"github.com/benbeisheim/legalmoves-backend/internal/ws"
)

type WebSocketController struct {
	moveService *service.MoveService
	sessions    *service.SessionManager
	log         zerolog.Logger
}

func NewWebSocketController(moveService *service.MoveService, sessions *service.SessionManager, log zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		moveService: moveService,
		sessions:    sessions,
		log:         log,
	}
}

// messageConn is the part of a WebSocket connection the read loop uses.
type messageConn interface {
	service.Conn
	ReadMessage() (messageType int, p []byte, err error)
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	log := wsc.log
	if rid, ok := c.Locals("wsRequestID").(string); ok {
		log = log.With().Str("rid", rid).Logger()
	}
	wsc.serve(c, log)
}

// serve answers messages on conn until it fails to read or write.
func (wsc *WebSocketController) serve(conn messageConn, log zerolog.Logger) {
	sessionID, ok := wsc.sessions.Register(conn)
	if !ok {
		return
	}
	defer wsc.sessions.Unregister(sessionID)

	log = log.With().Str("session", sessionID).Logger()
	log.Info().Msg("WebSocket session opened")

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("WebSocket session closed")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		reply := ws.ErrorMessage("malformed message")
		if err := json.Unmarshal(message, &msg); err == nil {
			reply = wsc.handleMessage(msg)
		}
		if err := wsc.sessions.Send(sessionID, reply); err != nil {
			log.Warn().Err(err).Msg("write error")
			return
		}
	}
}

// handleMessage maps one client message to the reply sent back on the socket.
func (wsc *WebSocketController) handleMessage(msg ws.Message) ws.Message {
	switch msg.Type {
	case ws.MessageTypePosition:
		var fen string
		if err := json.Unmarshal(msg.Payload, &fen); err != nil {
			return ws.ErrorMessage("payload must be a FEN string")
		}
		records, err := wsc.moveService.LegalMoves(fen)
		if err != nil {
			return ws.ErrorMessage("Invalid FEN")
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, records)
		if err != nil {
			return ws.ErrorMessage(err.Error())
		}
		return reply

	default:
		return ws.ErrorMessage(fmt.Sprintf("unknown message type: %s", msg.Type))
	}
}
