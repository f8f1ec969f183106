package handler

import (
	"errors"

	"moodlist-svc/internal/domain"
	apperrors "moodlist-svc/pkg/errors"
	"moodlist-svc/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// handleError 把领域错误翻译为统一的API错误响应
func handleError(c *gin.Context, err error) {
	var appErr *apperrors.Error

	switch {
	case errors.Is(err, domain.ErrSongNotFound),
		errors.Is(err, domain.ErrMoodNotFound),
		errors.Is(err, domain.ErrPlaylistNotFound):
		appErr = apperrors.ErrNotFound.WithDetails(err.Error())

	case errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidSongID),
		errors.Is(err, domain.ErrInvalidMoodID),
		errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrInvalidArtist),
		errors.Is(err, domain.ErrInvalidPlaylistName),
		errors.Is(err, domain.ErrPlaylistNameTooLong),
		errors.Is(err, domain.ErrInvalidSongCount),
		errors.Is(err, domain.ErrInvalidRemoteURL):
		appErr = apperrors.ErrValidationFailed.WithDetails(err.Error())

	case errors.Is(err, domain.ErrNoEligibleSongs):
		appErr = apperrors.ErrNoEligibleSongs

	case errors.Is(err, domain.ErrFileTooLarge):
		appErr = apperrors.ErrFileTooLarge

	case errors.Is(err, domain.ErrUnsupportedType):
		appErr = apperrors.ErrUnsupportedMediaType

	case errors.Is(err, domain.ErrStorageWriteFailed):
		appErr = apperrors.ErrStorageWriteFailed

	case errors.Is(err, domain.ErrStorageDeleteFailed):
		appErr = apperrors.ErrStorageDeleteFailed

	default:
		appErr = apperrors.ErrInternal.WithError(err)
	}

	httputil.ErrorResponse(c, appErr)
}
