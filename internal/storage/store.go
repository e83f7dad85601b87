package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fundbridge/dealroom/internal/config"
	"github.com/segmentio/ksuid"
)

// Store 附件对象存储，文件落盘后返回可访问 URL
// 不关心文件内容，只负责存取
type Store struct {
	dir     string
	baseURL string
}

// New 创建对象存储
func New(cfg config.StorageConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Store{
		dir:     cfg.Dir,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

// Save 保存文件，对象键用 ksuid 生成保证唯一
func (s *Store) Save(filename string, r io.Reader) (key, url string, size int64, err error) {
	ext := filepath.Ext(filepath.Base(filename))
	key = ksuid.New().String() + ext

	file, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to create blob: %w", err)
	}
	defer file.Close()

	size, err = io.Copy(file, r)
	if err != nil {
		os.Remove(file.Name())
		return "", "", 0, fmt.Errorf("failed to write blob: %w", err)
	}
	return key, s.baseURL + "/" + key, size, nil
}

// Open 按对象键读取文件
func (s *Store) Open(key string) (io.ReadCloser, error) {
	// 防止路径穿越
	if key != filepath.Base(key) {
		return nil, fmt.Errorf("invalid storage key")
	}
	return os.Open(filepath.Join(s.dir, key))
}

// Dir 文件落盘目录（路由挂载静态目录用）
func (s *Store) Dir() string {
	return s.dir
}

// BaseURL 对外访问地址前缀
func (s *Store) BaseURL() string {
	return s.baseURL
}
