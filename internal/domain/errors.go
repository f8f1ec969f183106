package domain

import "errors"

var (
	// 通用错误
	ErrInvalidUserID = errors.New("invalid user id")
	ErrInvalidSongID = errors.New("invalid song id")
	ErrInvalidMoodID = errors.New("invalid mood id")

	// 歌曲相关错误
	ErrSongNotFound    = errors.New("song not found")
	ErrInvalidTitle    = errors.New("invalid song title")
	ErrInvalidArtist   = errors.New("invalid song artist")
	ErrNoMediaAttached = errors.New("no media attached to song")

	// 心情相关错误
	ErrMoodNotFound = errors.New("mood not found")

	// 歌单相关错误
	ErrPlaylistNotFound    = errors.New("playlist not found")
	ErrInvalidPlaylistName = errors.New("invalid playlist name")
	ErrPlaylistNameTooLong = errors.New("playlist name too long")
	ErrInvalidSongCount    = errors.New("song count out of range")
	ErrNoEligibleSongs     = errors.New("no songs found for the selected mood")

	// 媒体相关错误
	ErrInvalidRemoteURL    = errors.New("invalid remote media url")
	ErrFileTooLarge        = errors.New("file size exceeds maximum allowed size")
	ErrUnsupportedType     = errors.New("file type not supported")
	ErrStorageWriteFailed  = errors.New("failed to write media file")
	ErrStorageDeleteFailed = errors.New("failed to delete media file")
)
