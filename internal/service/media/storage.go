package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"moodlist-svc/internal/domain"
	"moodlist-svc/pkg/logger"

	"github.com/google/uuid"
)

// StorageConfig 媒体存储配置
type StorageConfig struct {
	UploadDirectory        string
	MaxFileSizeBytes       int64
	AllowedVideoExtensions []string
	AllowedAudioExtensions []string
}

// Storage 媒体文件存储服务
type Storage struct {
	uploadDir string
	maxBytes  int64
	videoExts map[string]bool
	audioExts map[string]bool
	log       logger.Logger
}

// NewStorage 创建媒体文件存储服务
func NewStorage(cfg StorageConfig, log logger.Logger) *Storage {
	return &Storage{
		uploadDir: cfg.UploadDirectory,
		maxBytes:  cfg.MaxFileSizeBytes,
		videoExts: toSet(cfg.AllowedVideoExtensions),
		audioExts: toSet(cfg.AllowedAudioExtensions),
		log:       log,
	}
}

// Ingest 校验并落盘上传文件，返回本地媒体描述
// declaredSize超限时在写盘前拒绝；实际写入字节数才是最终的FileSize
func (s *Storage) Ingest(ctx context.Context, r io.Reader, fileName string, declaredSize int64, userID string) (domain.LocalMedia, error) {
	if fileName == "" || userID == "" {
		return domain.LocalMedia{}, domain.ErrStorageWriteFailed
	}
	if declaredSize > s.maxBytes {
		return domain.LocalMedia{}, domain.ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	fileType, ok := s.classify(ext)
	if !ok {
		return domain.LocalMedia{}, domain.ErrUnsupportedType
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.log.Error("failed to create upload directory", logger.String("dir", s.uploadDir), logger.Error(err))
		return domain.LocalMedia{}, domain.ErrStorageWriteFailed
	}

	uniqueName := uniqueFileName(fileName, userID)
	fullPath := filepath.Join(s.uploadDir, uniqueName)

	written, err := s.writeFile(ctx, fullPath, r)
	if err != nil {
		s.log.Error("failed to write media file", logger.String("path", fullPath), logger.Error(err))
		return domain.LocalMedia{}, domain.ErrStorageWriteFailed
	}

	return domain.LocalMedia{
		FilePath: filepath.ToSlash(filepath.Join(s.uploadDir, uniqueName)),
		FileName: fileName,
		FileType: fileType,
		FileSize: written,
	}, nil
}

// writeFile 写入文件，失败时清理残留
func (s *Storage) writeFile(ctx context.Context, fullPath string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// 不允许留下半写文件
		os.Remove(fullPath)
		return 0, err
	}
	return written, nil
}

// Delete 尽力删除媒体文件，文件不存在视为成功
func (s *Storage) Delete(filePath string) error {
	if filePath == "" {
		return nil
	}
	err := os.Remove(filepath.FromSlash(filePath))
	if err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to delete media file", logger.String("path", filePath), logger.Error(err))
		return domain.ErrStorageDeleteFailed
	}
	return nil
}

// Exists 检查媒体文件是否存在，任何探测失败按不存在处理
func (s *Storage) Exists(filePath string) bool {
	if filePath == "" {
		return false
	}
	info, err := os.Stat(filepath.FromSlash(filePath))
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// classify 按扩展名分类音视频
func (s *Storage) classify(ext string) (domain.FileType, bool) {
	switch {
	case s.videoExts[ext]:
		return domain.FileTypeVideo, true
	case s.audioExts[ext]:
		return domain.FileTypeAudio, true
	default:
		return "", false
	}
}

// uniqueFileName 生成存储唯一文件名：{用户ID}_{短哈希}_{原始名}{扩展名}
// 哈希输入带随机盐，同一用户同一秒上传同名文件也不会冲突
func uniqueFileName(originalName, userID string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))

	input := fmt.Sprintf("%s_%d_%s_%s", userID, time.Now().Unix(), base, uuid.New().String())
	sum := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(sum[:])[:8]

	return fmt.Sprintf("%s_%s_%s%s", userID, short, base, ext)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
