package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uptura/site/backend/internal/model/persona"
	"github.com/uptura/site/backend/pkg/utils"
)

// Profile 聊天组件展示的助手公开信息，系统提示词和联系方式只保留在服务端。
type Profile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Agency   string   `json:"agency"`
	Greeting string   `json:"greeting"`
	Services []string `json:"services"`
}

// Handler 人设信息的HTTP处理器
type Handler struct {
	active persona.Persona
}

// New 创建人设处理器
func New(active persona.Persona) *Handler {
	return &Handler{active: active}
}

// RegisterRoutes 注册人设相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/persona", h.handleGetPersona)
}

func (h *Handler) handleGetPersona(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, Profile{
		ID:       h.active.ID,
		Name:     h.active.Name,
		Agency:   h.active.Agency,
		Greeting: h.active.Greeting,
		Services: h.active.ServiceNames(),
	})
}
