package media

import (
	"net/url"
	"strings"

	"moodlist-svc/internal/domain"
)

// ResolverConfig 媒体解析配置
type ResolverConfig struct {
	PublicRootPrefix string
	FallbackMediaURL string
}

// Resolver 决定歌曲对外播放地址
type Resolver struct {
	publicRoot  string
	fallbackURL string
	exists      func(path string) bool
}

// NewResolver 创建媒体解析器，existence探测由Storage提供
func NewResolver(cfg ResolverConfig, storage *Storage) *Resolver {
	return &Resolver{
		publicRoot:  cfg.PublicRootPrefix,
		fallbackURL: cfg.FallbackMediaURL,
		exists:      storage.Exists,
	}
}

// ResolvePlayableURL 解析歌曲的播放地址
// 远程引用原样返回；本地引用文件缺失时降级为固定占位地址，绝不中断播放
func (r *Resolver) ResolvePlayableURL(song *domain.Song) (string, bool) {
	switch {
	case song.Media.IsRemote():
		return song.Media.RemoteURL, false
	case song.Media.IsLocal():
		if r.exists(song.Media.Local.FilePath) {
			return r.PublicURL(song.Media.Local.FilePath), false
		}
		return r.fallbackURL, true
	default:
		return "", false
	}
}

// IsLocalMediaMissing 判断本地媒体文件是否缺失
func (r *Resolver) IsLocalMediaMissing(song *domain.Song) bool {
	if !song.Media.IsLocal() {
		return false
	}
	return !r.exists(song.Media.Local.FilePath)
}

// PublicURL 把存储路径转换为可访问的URL路径
func (r *Resolver) PublicURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	p := strings.ReplaceAll(filePath, "\\", "/")
	if r.publicRoot != "" {
		p = strings.TrimPrefix(p, strings.TrimSuffix(r.publicRoot, "/")+"/")
	}
	return "/" + strings.TrimPrefix(p, "/")
}

// ExtractVideoID 从远程链接提取视频ID
// 支持youtu.be短链和youtube.com长链；无法识别时返回空串而非错误
func ExtractVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := u.Hostname()
	switch {
	case strings.Contains(host, "youtu.be"):
		return strings.TrimPrefix(u.Path, "/")
	case strings.Contains(host, "youtube.com"):
		return u.Query().Get("v")
	default:
		return ""
	}
}
