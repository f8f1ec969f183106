package media

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moodlist-svc/internal/domain"
	"moodlist-svc/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()
	dir := t.TempDir()
	storage := NewStorage(StorageConfig{
		UploadDirectory:        dir,
		MaxFileSizeBytes:       1 << 20,
		AllowedVideoExtensions: []string{".mp4", ".webm"},
		AllowedAudioExtensions: []string{".mp3", ".wav"},
	}, logger.New(io.Discard, logger.ErrorLevel))
	return storage, dir
}

func TestIngest_WritesFile(t *testing.T) {
	storage, _ := newTestStorage(t)

	local, err := storage.Ingest(context.Background(), strings.NewReader("hello audio"), "Track One.mp3", 11, "user1")
	assert.NoError(t, err)
	assert.Equal(t, "Track One.mp3", local.FileName)
	assert.Equal(t, domain.FileTypeAudio, local.FileType)
	assert.Equal(t, int64(11), local.FileSize)

	data, readErr := os.ReadFile(filepath.FromSlash(local.FilePath))
	assert.NoError(t, readErr)
	assert.Equal(t, "hello audio", string(data))

	// 存储名以用户ID开头并保留原始基础名
	base := filepath.Base(local.FilePath)
	assert.True(t, strings.HasPrefix(base, "user1_"))
	assert.True(t, strings.HasSuffix(base, "_Track One.mp3"))
}

func TestIngest_ClassifiesVideo(t *testing.T) {
	storage, _ := newTestStorage(t)

	local, err := storage.Ingest(context.Background(), strings.NewReader("video"), "clip.MP4", 5, "user1")
	assert.NoError(t, err)
	assert.Equal(t, domain.FileTypeVideo, local.FileType)
}

func TestIngest_RejectsUnsupportedExtension(t *testing.T) {
	storage, dir := newTestStorage(t)

	_, err := storage.Ingest(context.Background(), strings.NewReader("x"), "malware.exe", 1, "user1")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestIngest_RejectsOversizeBeforeWrite(t *testing.T) {
	storage, dir := newTestStorage(t)

	_, err := storage.Ingest(context.Background(), strings.NewReader("x"), "big.mp3", 200<<20, "user1")
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	// 超限必须在写盘前拒绝
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestIngest_DistinctNamesForSameFile(t *testing.T) {
	storage, _ := newTestStorage(t)

	first, err := storage.Ingest(context.Background(), strings.NewReader("a"), "same.mp3", 1, "user1")
	assert.NoError(t, err)
	second, err := storage.Ingest(context.Background(), strings.NewReader("b"), "same.mp3", 1, "user1")
	assert.NoError(t, err)

	assert.NotEqual(t, first.FilePath, second.FilePath)
}

func TestDelete_Idempotent(t *testing.T) {
	storage, _ := newTestStorage(t)

	local, err := storage.Ingest(context.Background(), strings.NewReader("a"), "gone.mp3", 1, "user1")
	assert.NoError(t, err)

	assert.NoError(t, storage.Delete(local.FilePath))
	// 再删一次仍然成功
	assert.NoError(t, storage.Delete(local.FilePath))
	assert.NoError(t, storage.Delete(""))
}

func TestExists(t *testing.T) {
	storage, dir := newTestStorage(t)

	local, err := storage.Ingest(context.Background(), strings.NewReader("a"), "here.mp3", 1, "user1")
	assert.NoError(t, err)

	assert.True(t, storage.Exists(local.FilePath))
	assert.False(t, storage.Exists(filepath.Join(dir, "nope.mp3")))
	assert.False(t, storage.Exists(""))
	// 目录不算文件
	assert.False(t, storage.Exists(dir))
}
