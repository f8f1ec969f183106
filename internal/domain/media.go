package domain

// MediaKind 媒体引用类型
type MediaKind string

const (
	// MediaUnset 未设置媒体
	MediaUnset MediaKind = ""
	// MediaRemote 远程媒体链接
	MediaRemote MediaKind = "remote"
	// MediaLocal 本地上传媒体
	MediaLocal MediaKind = "local"
)

// FileType 本地媒体文件分类
type FileType string

const (
	// FileTypeAudio 音频文件
	FileTypeAudio FileType = "audio"
	// FileTypeVideo 视频文件
	FileTypeVideo FileType = "video"
)

// LocalMedia 本地媒体文件描述
type LocalMedia struct {
	FilePath string   `json:"file_path"` // 存储路径（相对上传根目录）
	FileName string   `json:"file_name"` // 原始文件名
	FileType FileType `json:"file_type"` // audio或video
	FileSize int64    `json:"file_size"` // 实际写入字节数
}

// Media 歌曲媒体引用，Remote/Local/Unset三态，最多一种生效
type Media struct {
	Kind      MediaKind  `json:"kind"`
	RemoteURL string     `json:"remote_url,omitempty"`
	Local     LocalMedia `json:"local,omitempty"`
}

// IsRemote 判断是否为远程引用
func (m Media) IsRemote() bool {
	return m.Kind == MediaRemote
}

// IsLocal 判断是否为本地引用
func (m Media) IsLocal() bool {
	return m.Kind == MediaLocal
}

// IsUnset 判断是否未设置
func (m Media) IsUnset() bool {
	return m.Kind == MediaUnset
}

// NewRemoteMedia 创建远程媒体引用
func NewRemoteMedia(url string) Media {
	return Media{Kind: MediaRemote, RemoteURL: url}
}

// NewLocalMedia 创建本地媒体引用
func NewLocalMedia(local LocalMedia) Media {
	return Media{Kind: MediaLocal, Local: local}
}
