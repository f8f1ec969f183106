package handler

import (
	"moodlist-svc/internal/domain"
	"moodlist-svc/internal/service"
	"moodlist-svc/internal/service/media"
	apperrors "moodlist-svc/pkg/errors"
	"moodlist-svc/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// PlaylistHandler 歌单处理器
type PlaylistHandler struct {
	service  *service.PlaylistService
	resolver *media.Resolver
}

// NewPlaylistHandler 创建歌单处理器
func NewPlaylistHandler(service *service.PlaylistService, resolver *media.Resolver) *PlaylistHandler {
	return &PlaylistHandler{
		service:  service,
		resolver: resolver,
	}
}

// playlistSongResponse 歌单内歌曲响应，带播放顺序
type playlistSongResponse struct {
	Position int           `json:"position"`
	Song     *songResponse `json:"song"`
}

// playlistResponse 歌单响应
type playlistResponse struct {
	*domain.Playlist
	Songs []*playlistSongResponse `json:"songs,omitempty"`
}

// newPlaylistResponse 构建歌单响应，歌曲保持position升序
func newPlaylistResponse(playlist *domain.Playlist, resolver *media.Resolver) *playlistResponse {
	resp := &playlistResponse{Playlist: playlist}
	for _, ps := range playlist.Songs {
		resp.Songs = append(resp.Songs, &playlistSongResponse{
			Position: ps.Position,
			Song:     newSongResponse(ps.Song, resolver),
		})
	}
	playlist.Songs = nil
	return resp
}

// GeneratePlaylist 按心情生成歌单
func (h *PlaylistHandler) GeneratePlaylist(c *gin.Context) {
	userID := httputil.GetUserID(c)

	var req struct {
		MoodID    string `json:"mood_id" binding:"required"`
		Name      string `json:"name"`
		SongCount int    `json:"song_count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ErrorResponse(c, apperrors.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	playlist, err := h.service.Generate(c.Request.Context(), userID, req.MoodID, req.Name, req.SongCount)
	if err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, newPlaylistResponse(playlist, h.resolver))
}

// ListPlaylists 获取用户歌单列表
func (h *PlaylistHandler) ListPlaylists(c *gin.Context) {
	userID := httputil.GetUserID(c)

	playlists, err := h.service.ListUserPlaylists(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, playlists)
}

// GetPlaylist 获取歌单详情
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	userID := httputil.GetUserID(c)

	playlist, err := h.service.GetPlaylist(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, newPlaylistResponse(playlist, h.resolver))
}

// RenamePlaylist 重命名歌单
func (h *PlaylistHandler) RenamePlaylist(c *gin.Context) {
	userID := httputil.GetUserID(c)

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ErrorResponse(c, apperrors.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	if err := h.service.RenamePlaylist(c.Request.Context(), c.Param("id"), userID, req.Name); err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, gin.H{"message": "renamed successfully"})
}

// DeletePlaylist 删除歌单
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	userID := httputil.GetUserID(c)

	if err := h.service.DeletePlaylist(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, gin.H{"message": "deleted successfully"})
}

// MoodCounts 统计每个心情标签下的歌曲数量
func (h *PlaylistHandler) MoodCounts(c *gin.Context) {
	userID := httputil.GetUserID(c)

	counts, err := h.service.CountSongsPerMood(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	httputil.SuccessResponse(c, counts)
}
