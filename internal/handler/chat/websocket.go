package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	chatmodel "github.com/uptura/site/backend/internal/model/chat"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// WebSocketHandler 通过 WebSocket 提供聊天，每个入站帧对应一个回复帧。
type WebSocketHandler struct {
	replier  Replier
	upgrader websocket.Upgrader
}

// NewWebSocketHandler 创建 WebSocket 处理器。allowedOrigin 为 "*" 时接受任意来源，
// 否则 Origin 必须完全一致或缺省。
func NewWebSocketHandler(replier Replier, allowedOrigin string) *WebSocketHandler {
	return &WebSocketHandler{
		replier: replier,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册 WebSocket 路由
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/ws", h.handleWebSocket)
}

type socketReply struct {
	Reply  string `json:"reply"`
	Status int    `json:"status"`
}

type inboundFrame struct {
	msgType int
	data    []byte
}

// handleWebSocket 升级连接并逐帧回复，客户端断开时取消进行中的回复。
func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	log.Printf("[websocket] new connection conn=%s remote=%s", connID, r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	frames := make(chan inboundFrame)
	go h.readLoop(ctx, cancel, conn, connID, frames)
	go h.pingLoop(ctx, conn)

	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			if frame.msgType != websocket.TextMessage {
				h.send(conn, connID, http.StatusInternalServerError, chatmodel.ReplyInternalError)
				continue
			}

			status, text := h.handleFrame(ctx, connID, frame.data)
			if ctx.Err() != nil {
				log.Printf("[websocket] conn=%s closed before reply was sent", connID)
				return
			}
			h.send(conn, connID, status, text)
		}
	}
}

// readLoop 是连接上唯一的读取者，连接出错或关闭时取消 ctx。
func (h *WebSocketHandler) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, connID string, frames chan<- inboundFrame) {
	defer close(frames)
	defer cancel()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[websocket] conn=%s read error: %v", connID, err)
			}
			return
		}

		conn.SetReadDeadline(time.Now().Add(readTimeout))

		select {
		case frames <- inboundFrame{msgType: msgType, data: data}:
		case <-ctx.Done():
			return
		}
	}
}

// handleFrame 对单帧执行与 HTTP 接口相同的检查
func (h *WebSocketHandler) handleFrame(ctx context.Context, connID string, data []byte) (int, string) {
	if h.replier == nil || !h.replier.Configured() {
		log.Printf("[websocket] conn=%s upstream API key is not configured", connID)
		return http.StatusInternalServerError, chatmodel.ReplyMissingAPIKey
	}

	var payload chatmodel.Request
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("[websocket] conn=%s failed to decode frame: %v", connID, err)
		return http.StatusInternalServerError, chatmodel.ReplyInternalError
	}

	return answer(ctx, h.replier, payload.Message, "conn="+connID)
}

func (h *WebSocketHandler) send(conn *websocket.Conn, connID string, status int, text string) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(socketReply{Reply: text, Status: status}); err != nil {
		log.Printf("[websocket] conn=%s write failed: %v", connID, err)
	}
}

// pingLoop 定时发送 ping 保持空闲连接。WriteControl 可与 WriteJSON 并发调用。
func (h *WebSocketHandler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
