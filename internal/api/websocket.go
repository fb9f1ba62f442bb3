package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/raphaelgruber/shiftcrack/internal/recovery"
	"github.com/raphaelgruber/shiftcrack/internal/service"
)

const writeWait = 10 * time.Second

type candidatesRequest struct {
	Ciphertext string `json:"ciphertext"`
}

type doneFrame struct {
	Done  bool `json:"done"`
	Count int  `json:"count"`
}

type selectFrame struct {
	Select *int `json:"select"`
}

// candidates runs interactive recovery over a websocket. The client sends
// the ciphertext, receives one frame per candidate followed by a done frame,
// then answers with {"select": shift} and receives the result or an error.
func (a *api) candidates(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		a.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer ignoreClose(conn)

	var req candidatesRequest
	if err := conn.ReadJSON(&req); err != nil {
		a.send(conn, errorResponse{Error: "expected {\"ciphertext\": ...}"})
		return
	}

	result, err := a.svc.Crack(r.Context(), req.Ciphertext, service.CrackOptions{}, &socketSelector{conn: conn})
	if err != nil {
		var closeErr *websocket.CloseError
		if errors.As(err, &closeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
			return
		}
		a.send(conn, errorResponse{Error: err.Error()})
		return
	}
	a.send(conn, newCrackResponse(result))

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (a *api) send(conn *websocket.Conn, v any) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(v); err != nil {
		a.logger.Debug("websocket write failed", "error", err)
	}
}

// socketSelector streams candidates to the peer and reads back its choice.
type socketSelector struct {
	conn *websocket.Conn
}

func (s *socketSelector) Select(ctx context.Context, candidates []recovery.Candidate) (*int, error) {
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := s.conn.WriteJSON(c); err != nil {
			return nil, err
		}
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(doneFrame{Done: true, Count: len(candidates)}); err != nil {
		return nil, err
	}

	var frame selectFrame
	if err := s.conn.ReadJSON(&frame); err != nil {
		var closeErr *websocket.CloseError
		if errors.As(err, &closeErr) {
			return nil, err
		}
		// Anything but a well-formed choice means no choice.
		return nil, nil
	}
	return frame.Select, nil
}

func ignoreClose(c io.Closer) {
	_ = c.Close()
}
