package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// LocalStore 将内容写入目录下以 UUID 命名的文件.
type LocalStore struct {
	fs   afero.Fs
	root string
}

// NewLocalStore 创建本地存储，目录在首次写入时创建.
func NewLocalStore(fs afero.Fs, root string) *LocalStore {
	return &LocalStore{fs: fs, root: root}
}

// Name 返回后端名称.
func (s *LocalStore) Name() string {
	return "local:" + s.root
}

// Put 先写临时文件再原子重命名，避免读到半写入的内容.
func (s *LocalStore) Put(_ context.Context, data []byte) (string, error) {
	if err := s.fs.MkdirAll(s.root, dirPerm); err != nil {
		return "", fmt.Errorf("create folder %s: %w", s.root, err)
	}

	path := filepath.Join(s.root, uuid.NewString())
	tmp := path + ".tmp"

	if err := afero.WriteFile(s.fs, tmp, data, filePerm); err != nil {
		_ = s.fs.Remove(tmp)
		return "", fmt.Errorf("write content: %w", err)
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return "", fmt.Errorf("rename content: %w", err)
	}

	return path, nil
}

// Exists 路径是否为已存在的普通文件.
func (s *LocalStore) Exists(_ context.Context, path string) (bool, error) {
	info, err := s.fs.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return !info.IsDir(), nil
}

// ReadAll 读取全部内容.
func (s *LocalStore) ReadAll(_ context.Context, path string) ([]byte, error) {
	return afero.ReadFile(s.fs, path)
}

// Delete 删除内容文件.
func (s *LocalStore) Delete(_ context.Context, path string) error {
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove content %s: %w", path, err)
	}

	return nil
}

// Ping 确认根目录可创建.
func (s *LocalStore) Ping(_ context.Context) error {
	return s.fs.MkdirAll(s.root, dirPerm)
}
