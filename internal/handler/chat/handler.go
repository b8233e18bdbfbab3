package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatmodel "github.com/uptura/site/backend/internal/model/chat"
	"github.com/uptura/site/backend/internal/service/ai"
	"github.com/uptura/site/backend/pkg/utils"
)

// Replier 为一条访客消息生成助手回复。
type Replier interface {
	Configured() bool
	Reply(ctx context.Context, message string) (string, error)
}

// Handler 聊天代理接口的HTTP处理器
type Handler struct {
	replier Replier
}

// New 创建聊天处理器
func New(replier Replier) *Handler {
	return &Handler{replier: replier}
}

// RegisterRoutes 注册聊天路由，所有方法都进入处理器，非 POST 也返回 JSON 回复。
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.HandleFunc("/chat", h.handleChat)
}

// handleChat 转发单条消息并把结果映射为固定回复
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondReply(w, http.StatusMethodNotAllowed, chatmodel.ReplyMethodNotAllowed)
		return
	}

	reqID := middleware.GetReqID(r.Context())

	// 先检查密钥，再解析请求体。
	if h.replier == nil || !h.replier.Configured() {
		log.Printf("[chat] req=%s upstream API key is not configured", reqID)
		respondReply(w, http.StatusInternalServerError, chatmodel.ReplyMissingAPIKey)
		return
	}

	var payload chatmodel.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("[chat] req=%s failed to decode request body: %v", reqID, err)
		respondReply(w, http.StatusInternalServerError, chatmodel.ReplyInternalError)
		return
	}

	status, text := answer(r.Context(), h.replier, payload.Message, "req="+reqID)
	respondReply(w, status, text)
}

// answer 执行一次 Reply，返回客户端看到的状态码与文本。
// 错误细节只写日志，不返回给客户端。
func answer(ctx context.Context, replier Replier, message, tag string) (int, string) {
	reply, err := replier.Reply(ctx, message)
	if err != nil {
		status, text := classify(err)
		log.Printf("[chat] %s %s: %v", tag, text, err)
		return status, text
	}
	return http.StatusOK, reply
}

// classify 把 Reply 的错误归类为固定的对外文本
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ai.ErrMissingAPIKey):
		return http.StatusInternalServerError, chatmodel.ReplyMissingAPIKey
	case errors.Is(err, ai.ErrUpstream):
		return http.StatusInternalServerError, chatmodel.ReplyUpstreamError
	default:
		return http.StatusInternalServerError, chatmodel.ReplyInternalError
	}
}

func respondReply(w http.ResponseWriter, status int, text string) {
	utils.RespondJSON(w, status, chatmodel.Reply{Reply: text})
}
