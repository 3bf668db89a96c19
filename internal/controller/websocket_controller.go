package controller

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/duckboard-backend/internal/middleware"
	"github.com/benbeisheim/duckboard-backend/internal/service"
	"github.com/benbeisheim/duckboard-backend/internal/ws"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

type WebSocketController struct {
	boardService *service.BoardService
	log          zerolog.Logger
}

func NewWebSocketController(boardService *service.BoardService, log zerolog.Logger) *WebSocketController {
	return &WebSocketController{boardService: boardService, log: log}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	boardID := c.Params("boardId")
	clientID, _ := c.Locals(middleware.ClientIDKey).(string)
	log := wsc.log.With().Str("board", boardID).Str("client", clientID).Logger()

	session, viewer, err := wsc.boardService.Join(boardID, clientID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to join board")
		if msg, encErr := ws.Encode(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()}); encErr == nil {
			_ = c.WriteMessage(websocket.TextMessage, msg)
		}
		_ = c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		return
	}
	log.Info().Msg("viewer connected")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		wsc.write(c, viewer)
	}()

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("read ended")
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.reply(session, viewer, fmt.Errorf("parse error: %w", err))
			continue
		}
		if err := wsc.handleMessage(session, msg); err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("message refused")
			wsc.reply(session, viewer, err)
		}
	}

	session.Leave(viewer)
	wg.Wait()
	log.Info().Msg("viewer disconnected")
}

// write owns every write to the connection. It returns once the session
// closes the viewer's channel or the connection fails.
func (wsc *WebSocketController) write(c *websocket.Conn, v *service.Viewer) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-v.Send:
			_ = c.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.WriteMessage(websocket.CloseMessage, []byte{})
				_ = c.Close()
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				_ = c.Close()
				return
			}
		case <-ticker.C:
			_ = c.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.Close()
				return
			}
		}
	}
}

func (wsc *WebSocketController) handleMessage(s *service.Session, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypePointer:
		var p ws.PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		return s.Pointer(p.Kind, p.Pointer())

	case ws.MessageTypeTakeback:
		_, err := s.Takeback()
		return err

	case ws.MessageTypeMove:
		var m ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &m); err != nil {
			return err
		}
		return s.PerformMove(m.Notation)

	case ws.MessageTypeFlip:
		return s.Flip()

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) reply(s *service.Session, v *service.Viewer, err error) {
	msg, encErr := ws.Encode(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if encErr != nil {
		return
	}
	_ = s.Reply(v, msg)
}
