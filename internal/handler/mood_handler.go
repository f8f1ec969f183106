package handler

import (
	"moodlist-svc/internal/service"
	"moodlist-svc/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// MoodHandler 心情标签处理器
type MoodHandler struct {
	service *service.MoodService
}

// NewMoodHandler 创建心情标签处理器
func NewMoodHandler(service *service.MoodService) *MoodHandler {
	return &MoodHandler{service: service}
}

// ListMoods 获取全部心情标签
func (h *MoodHandler) ListMoods(c *gin.Context) {
	moods, err := h.service.ListMoods(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, moods)
}

// GetMood 获取单个心情标签
func (h *MoodHandler) GetMood(c *gin.Context) {
	mood, err := h.service.GetMood(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, mood)
}
