package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"moodlist-svc/internal/cache"
	"moodlist-svc/internal/domain"
	"moodlist-svc/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMoodRepository 模拟心情仓储
type MockMoodRepository struct {
	mock.Mock
}

func (m *MockMoodRepository) List(ctx context.Context) ([]*domain.Mood, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Mood), args.Error(1)
}

func (m *MockMoodRepository) GetByID(ctx context.Context, id string) (*domain.Mood, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mood), args.Error(1)
}

// MockSongRepository 模拟歌曲仓储
type MockSongRepository struct {
	mock.Mock
}

func (m *MockSongRepository) Create(ctx context.Context, song *domain.Song) error {
	args := m.Called(ctx, song)
	return args.Error(0)
}

func (m *MockSongRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*domain.Song, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Song), args.Error(1)
}

func (m *MockSongRepository) ListByUser(ctx context.Context, userID, search string) ([]*domain.Song, error) {
	args := m.Called(ctx, userID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Song), args.Error(1)
}

func (m *MockSongRepository) ListByUserAndMood(ctx context.Context, userID, moodID string) ([]*domain.Song, error) {
	args := m.Called(ctx, userID, moodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Song), args.Error(1)
}

func (m *MockSongRepository) UpdateInfo(ctx context.Context, song *domain.Song) error {
	args := m.Called(ctx, song)
	return args.Error(0)
}

func (m *MockSongRepository) UpdateMedia(ctx context.Context, song *domain.Song) error {
	args := m.Called(ctx, song)
	return args.Error(0)
}

func (m *MockSongRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSongMoodRepository 模拟歌曲心情关联仓储
type MockSongMoodRepository struct {
	mock.Mock
}

func (m *MockSongMoodRepository) Replace(ctx context.Context, songID string, moodIDs []string) error {
	args := m.Called(ctx, songID, moodIDs)
	return args.Error(0)
}

func (m *MockSongMoodRepository) ListBySong(ctx context.Context, songID string) ([]*domain.Mood, error) {
	args := m.Called(ctx, songID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Mood), args.Error(1)
}

func (m *MockSongMoodRepository) CountByMoodForUser(ctx context.Context, userID string) (map[string]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// MockPlaylistRepository 模拟歌单仓储
type MockPlaylistRepository struct {
	mock.Mock
}

func (m *MockPlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	args := m.Called(ctx, playlist)
	return args.Error(0)
}

func (m *MockPlaylistRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*domain.Playlist, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Playlist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) UpdateName(ctx context.Context, id, userID, name string) (bool, error) {
	args := m.Called(ctx, id, userID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlaylistRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlaylistRepository) DeleteOrphans(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlaylistSongRepository 模拟歌单歌曲关联仓储
type MockPlaylistSongRepository struct {
	mock.Mock
}

func (m *MockPlaylistSongRepository) AddBatch(ctx context.Context, songs []*domain.PlaylistSong) error {
	args := m.Called(ctx, songs)
	return args.Error(0)
}

func (m *MockPlaylistSongRepository) ListByPlaylist(ctx context.Context, playlistID string) ([]*domain.PlaylistSong, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PlaylistSong), args.Error(1)
}

func testLogger() logger.Logger {
	return logger.New(io.Discard, logger.ErrorLevel)
}

func newTestPlaylistService() (*PlaylistService, *MockPlaylistRepository, *MockPlaylistSongRepository, *MockSongRepository, *MockMoodRepository, *MockSongMoodRepository) {
	playlistRepo := new(MockPlaylistRepository)
	playlistSongRepo := new(MockPlaylistSongRepository)
	songRepo := new(MockSongRepository)
	moodRepo := new(MockMoodRepository)
	songMoodRepo := new(MockSongMoodRepository)
	countCache := cache.NewMoodCountCache(nil, testLogger())

	svc := NewPlaylistService(playlistRepo, playlistSongRepo, songRepo, moodRepo, songMoodRepo, countCache, testLogger())
	return svc, playlistRepo, playlistSongRepo, songRepo, moodRepo, songMoodRepo
}

func makeSongs(userID string, n int) []*domain.Song {
	songs := make([]*domain.Song, 0, n)
	for i := 0; i < n; i++ {
		songs = append(songs, &domain.Song{
			ID:     "song-" + string(rune('a'+i)),
			UserID: userID,
			Title:  "Title",
			Artist: "Artist",
		})
	}
	return songs
}

func TestGenerate_TakesRequestedCount(t *testing.T) {
	svc, playlistRepo, playlistSongRepo, songRepo, moodRepo, _ := newTestPlaylistService()

	mood := &domain.Mood{ID: "mood-happy", Name: "Happy"}
	moodRepo.On("GetByID", mock.Anything, "mood-happy").Return(mood, nil)
	songRepo.On("ListByUserAndMood", mock.Anything, "user1", "mood-happy").Return(makeSongs("user1", 10), nil)
	playlistRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Playlist")).Return(nil)

	var captured []*domain.PlaylistSong
	playlistSongRepo.On("AddBatch", mock.Anything, mock.AnythingOfType("[]*domain.PlaylistSong")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]*domain.PlaylistSong)
		}).Return(nil)

	playlistRepo.On("GetByIDAndUser", mock.Anything, mock.AnythingOfType("string"), "user1").
		Return(&domain.Playlist{ID: "p1", UserID: "user1", MoodID: "mood-happy", Mood: mood}, nil)
	playlistSongRepo.On("ListByPlaylist", mock.Anything, "p1").Return([]*domain.PlaylistSong{}, nil)

	_, err := svc.Generate(context.Background(), "user1", "mood-happy", "", 5)
	assert.NoError(t, err)
	assert.Len(t, captured, 5)

	// position从1开始连续递增，歌曲不重复
	seen := make(map[string]bool)
	for i, ps := range captured {
		assert.Equal(t, i+1, ps.Position)
		assert.False(t, seen[ps.SongID])
		seen[ps.SongID] = true
	}
}

func TestGenerate_TakesAllWhenFewerCandidates(t *testing.T) {
	svc, playlistRepo, playlistSongRepo, songRepo, moodRepo, _ := newTestPlaylistService()

	mood := &domain.Mood{ID: "mood-sad", Name: "Sad"}
	moodRepo.On("GetByID", mock.Anything, "mood-sad").Return(mood, nil)
	songRepo.On("ListByUserAndMood", mock.Anything, "user1", "mood-sad").Return(makeSongs("user1", 3), nil)
	playlistRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Playlist")).Return(nil)

	var captured []*domain.PlaylistSong
	playlistSongRepo.On("AddBatch", mock.Anything, mock.AnythingOfType("[]*domain.PlaylistSong")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]*domain.PlaylistSong)
		}).Return(nil)

	playlistRepo.On("GetByIDAndUser", mock.Anything, mock.AnythingOfType("string"), "user1").
		Return(&domain.Playlist{ID: "p1", UserID: "user1", MoodID: "mood-sad", Mood: mood}, nil)
	playlistSongRepo.On("ListByPlaylist", mock.Anything, "p1").Return([]*domain.PlaylistSong{}, nil)

	_, err := svc.Generate(context.Background(), "user1", "mood-sad", "", 20)
	assert.NoError(t, err)
	assert.Len(t, captured, 3)
}

func TestGenerate_NoEligibleSongs(t *testing.T) {
	svc, playlistRepo, _, songRepo, moodRepo, _ := newTestPlaylistService()

	mood := &domain.Mood{ID: "mood-calm", Name: "Calm"}
	moodRepo.On("GetByID", mock.Anything, "mood-calm").Return(mood, nil)
	songRepo.On("ListByUserAndMood", mock.Anything, "user1", "mood-calm").Return([]*domain.Song{}, nil)

	_, err := svc.Generate(context.Background(), "user1", "mood-calm", "", 5)
	assert.ErrorIs(t, err, domain.ErrNoEligibleSongs)

	// 没有候选时不应落任何记录
	playlistRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_DefaultName(t *testing.T) {
	svc, playlistRepo, playlistSongRepo, songRepo, moodRepo, _ := newTestPlaylistService()

	mood := &domain.Mood{ID: "mood-happy", Name: "Happy"}
	moodRepo.On("GetByID", mock.Anything, "mood-happy").Return(mood, nil)
	songRepo.On("ListByUserAndMood", mock.Anything, "user1", "mood-happy").Return(makeSongs("user1", 2), nil)

	var created *domain.Playlist
	playlistRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Playlist")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Playlist)
		}).Return(nil)
	playlistSongRepo.On("AddBatch", mock.Anything, mock.Anything).Return(nil)
	playlistRepo.On("GetByIDAndUser", mock.Anything, mock.AnythingOfType("string"), "user1").
		Return(&domain.Playlist{ID: "p1", UserID: "user1", Mood: mood}, nil)
	playlistSongRepo.On("ListByPlaylist", mock.Anything, "p1").Return([]*domain.PlaylistSong{}, nil)

	_, err := svc.Generate(context.Background(), "user1", "mood-happy", "", 2)
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Contains(t, created.Name, "Happy Playlist - ")
}

func TestGenerate_SuppliedNameKept(t *testing.T) {
	svc, playlistRepo, playlistSongRepo, songRepo, moodRepo, _ := newTestPlaylistService()

	mood := &domain.Mood{ID: "mood-happy", Name: "Happy"}
	moodRepo.On("GetByID", mock.Anything, "mood-happy").Return(mood, nil)
	songRepo.On("ListByUserAndMood", mock.Anything, "user1", "mood-happy").Return(makeSongs("user1", 2), nil)

	var created *domain.Playlist
	playlistRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Playlist")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Playlist)
		}).Return(nil)
	playlistSongRepo.On("AddBatch", mock.Anything, mock.Anything).Return(nil)
	playlistRepo.On("GetByIDAndUser", mock.Anything, mock.AnythingOfType("string"), "user1").
		Return(&domain.Playlist{ID: "p1", UserID: "user1", Mood: mood}, nil)
	playlistSongRepo.On("ListByPlaylist", mock.Anything, "p1").Return([]*domain.PlaylistSong{}, nil)

	_, err := svc.Generate(context.Background(), "user1", "mood-happy", "My Morning Mix", 2)
	assert.NoError(t, err)
	assert.Equal(t, "My Morning Mix", created.Name)
}

func TestGenerate_InvalidSongCount(t *testing.T) {
	svc, _, _, _, _, _ := newTestPlaylistService()

	_, err := svc.Generate(context.Background(), "user1", "mood-happy", "", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSongCount)

	_, err = svc.Generate(context.Background(), "user1", "mood-happy", "", domain.MaxPlaylistSongCount+1)
	assert.ErrorIs(t, err, domain.ErrInvalidSongCount)
}

func TestGenerate_MoodNotFound(t *testing.T) {
	svc, _, _, _, moodRepo, _ := newTestPlaylistService()

	moodRepo.On("GetByID", mock.Anything, "mood-x").Return(nil, domain.ErrMoodNotFound)

	_, err := svc.Generate(context.Background(), "user1", "mood-x", "", 5)
	assert.ErrorIs(t, err, domain.ErrMoodNotFound)
}

func TestGenerate_AssociationFailure(t *testing.T) {
	svc, playlistRepo, playlistSongRepo, songRepo, moodRepo, _ := newTestPlaylistService()

	mood := &domain.Mood{ID: "mood-happy", Name: "Happy"}
	moodRepo.On("GetByID", mock.Anything, "mood-happy").Return(mood, nil)
	songRepo.On("ListByUserAndMood", mock.Anything, "user1", "mood-happy").Return(makeSongs("user1", 3), nil)
	playlistRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Playlist")).Return(nil)
	playlistSongRepo.On("AddBatch", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	_, err := svc.Generate(context.Background(), "user1", "mood-happy", "", 3)
	assert.Error(t, err)

	// 歌单行已落库，留给清理任务，不做回滚删除
	playlistRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPlaylist_AttachesSongsInOrder(t *testing.T) {
	svc, playlistRepo, playlistSongRepo, _, _, _ := newTestPlaylistService()

	playlistRepo.On("GetByIDAndUser", mock.Anything, "p1", "user1").
		Return(&domain.Playlist{ID: "p1", UserID: "user1"}, nil)
	playlistSongRepo.On("ListByPlaylist", mock.Anything, "p1").Return([]*domain.PlaylistSong{
		{PlaylistID: "p1", SongID: "s1", Position: 1},
		{PlaylistID: "p1", SongID: "s2", Position: 2},
	}, nil)

	playlist, err := svc.GetPlaylist(context.Background(), "p1", "user1")
	assert.NoError(t, err)
	assert.Equal(t, 2, playlist.SongCount)
	assert.Equal(t, 1, playlist.Songs[0].Position)
	assert.Equal(t, 2, playlist.Songs[1].Position)
}

func TestGetPlaylist_NotOwned(t *testing.T) {
	svc, playlistRepo, _, _, _, _ := newTestPlaylistService()

	playlistRepo.On("GetByIDAndUser", mock.Anything, "p1", "intruder").
		Return(nil, domain.ErrPlaylistNotFound)

	_, err := svc.GetPlaylist(context.Background(), "p1", "intruder")
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
}

func TestRenamePlaylist(t *testing.T) {
	svc, playlistRepo, _, _, _, _ := newTestPlaylistService()

	playlistRepo.On("UpdateName", mock.Anything, "p1", "user1", "New Name").Return(true, nil)
	assert.NoError(t, svc.RenamePlaylist(context.Background(), "p1", "user1", "New Name"))

	playlistRepo.On("UpdateName", mock.Anything, "p2", "user1", "New Name").Return(false, nil)
	err := svc.RenamePlaylist(context.Background(), "p2", "user1", "New Name")
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
}

func TestRenamePlaylist_InvalidName(t *testing.T) {
	svc, _, _, _, _, _ := newTestPlaylistService()

	err := svc.RenamePlaylist(context.Background(), "p1", "user1", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidPlaylistName)

	long := make([]byte, domain.MaxPlaylistNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	err = svc.RenamePlaylist(context.Background(), "p1", "user1", string(long))
	assert.ErrorIs(t, err, domain.ErrPlaylistNameTooLong)
}

func TestDeletePlaylist(t *testing.T) {
	svc, playlistRepo, _, _, _, _ := newTestPlaylistService()

	playlistRepo.On("Delete", mock.Anything, "p1", "user1").Return(true, nil)
	assert.NoError(t, svc.DeletePlaylist(context.Background(), "p1", "user1"))

	playlistRepo.On("Delete", mock.Anything, "p2", "user1").Return(false, nil)
	err := svc.DeletePlaylist(context.Background(), "p2", "user1")
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
}

func TestCountSongsPerMood_FillsZero(t *testing.T) {
	svc, _, _, _, moodRepo, songMoodRepo := newTestPlaylistService()

	songMoodRepo.On("CountByMoodForUser", mock.Anything, "user1").
		Return(map[string]int{"mood-happy": 3}, nil)
	moodRepo.On("List", mock.Anything).Return([]*domain.Mood{
		{ID: "mood-happy", Name: "Happy"},
		{ID: "mood-sad", Name: "Sad"},
	}, nil)

	counts, err := svc.CountSongsPerMood(context.Background(), "user1")
	assert.NoError(t, err)
	assert.Equal(t, 3, counts["mood-happy"])
	assert.Equal(t, 0, counts["mood-sad"])
	assert.Len(t, counts, 2)
}
