package handler

import (
	"moodlist-svc/internal/domain"
	"moodlist-svc/internal/service"
	"moodlist-svc/internal/service/media"
	apperrors "moodlist-svc/pkg/errors"
	"moodlist-svc/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// SongHandler 歌曲处理器
type SongHandler struct {
	service  *service.SongService
	resolver *media.Resolver
}

// NewSongHandler 创建歌曲处理器
func NewSongHandler(service *service.SongService, resolver *media.Resolver) *SongHandler {
	return &SongHandler{
		service:  service,
		resolver: resolver,
	}
}

// songResponse 歌曲响应，附带解析后的播放地址
type songResponse struct {
	*domain.Song
	PlayableURL  string `json:"playable_url,omitempty"`
	UsesFallback bool   `json:"uses_fallback,omitempty"`
	VideoID      string `json:"video_id,omitempty"`
}

// newSongResponse 构建歌曲响应
func newSongResponse(song *domain.Song, resolver *media.Resolver) *songResponse {
	resp := &songResponse{Song: song}
	resp.PlayableURL, resp.UsesFallback = resolver.ResolvePlayableURL(song)
	if song.Media.IsRemote() {
		resp.VideoID = media.ExtractVideoID(song.Media.RemoteURL)
	}
	return resp
}

// CreateSong 创建歌曲
func (h *SongHandler) CreateSong(c *gin.Context) {
	userID := httputil.GetUserID(c)

	var req struct {
		Title   string   `json:"title" binding:"required"`
		Artist  string   `json:"artist" binding:"required"`
		MoodIDs []string `json:"mood_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ErrorResponse(c, apperrors.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	song, err := h.service.CreateSong(c.Request.Context(), userID, req.Title, req.Artist, req.MoodIDs)
	if err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, newSongResponse(song, h.resolver))
}

// ListSongs 获取歌曲列表，支持mood_id过滤与search模糊过滤
func (h *SongHandler) ListSongs(c *gin.Context) {
	userID := httputil.GetUserID(c)

	songs, err := h.service.ListUserSongs(c.Request.Context(), userID, c.Query("mood_id"), c.Query("search"))
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]*songResponse, 0, len(songs))
	for _, song := range songs {
		resp = append(resp, newSongResponse(song, h.resolver))
	}
	httputil.SuccessResponse(c, resp)
}

// GetSong 获取歌曲详情
func (h *SongHandler) GetSong(c *gin.Context) {
	userID := httputil.GetUserID(c)

	song, err := h.service.GetSong(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, newSongResponse(song, h.resolver))
}

// UpdateSong 更新歌曲信息和心情标签
func (h *SongHandler) UpdateSong(c *gin.Context) {
	userID := httputil.GetUserID(c)

	var req struct {
		Title   string   `json:"title" binding:"required"`
		Artist  string   `json:"artist" binding:"required"`
		MoodIDs []string `json:"mood_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ErrorResponse(c, apperrors.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	song, err := h.service.UpdateSong(c.Request.Context(), c.Param("id"), userID, req.Title, req.Artist, req.MoodIDs)
	if err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, newSongResponse(song, h.resolver))
}

// DeleteSong 删除歌曲
func (h *SongHandler) DeleteSong(c *gin.Context) {
	userID := httputil.GetUserID(c)

	if err := h.service.DeleteSong(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, gin.H{"message": "deleted successfully"})
}

// UploadMedia 上传并绑定本地媒体文件
func (h *SongHandler) UploadMedia(c *gin.Context) {
	userID := httputil.GetUserID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.ErrorResponse(c, apperrors.ErrInvalidRequest.WithDetails("missing file field"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httputil.ErrorResponse(c, apperrors.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}
	defer f.Close()

	song, err := h.service.SetLocalMedia(c.Request.Context(), c.Param("id"), userID, f, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, newSongResponse(song, h.resolver))
}

// SetRemoteMedia 绑定远程媒体链接
func (h *SongHandler) SetRemoteMedia(c *gin.Context) {
	userID := httputil.GetUserID(c)

	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ErrorResponse(c, apperrors.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	song, err := h.service.SetRemoteMedia(c.Request.Context(), c.Param("id"), userID, req.URL)
	if err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, newSongResponse(song, h.resolver))
}

// ClearMedia 清除媒体引用
func (h *SongHandler) ClearMedia(c *gin.Context) {
	userID := httputil.GetUserID(c)

	song, err := h.service.ClearMedia(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, newSongResponse(song, h.resolver))
}
