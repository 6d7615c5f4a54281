// Package blob 保存文件记录的原始内容. 记录只持有内容路径（localPath），
// 不同后端对路径的解释不同：本地后端为文件系统路径，S3 后端为对象键.
package blob

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/yeisme/filevault/pkg/configs"
	s3c "github.com/yeisme/filevault/pkg/internal/storage/s3"
)

// ContentStore 内容存储接口.
type ContentStore interface {
	// Put 写入内容并返回可用于读取的路径.
	Put(ctx context.Context, data []byte) (string, error)
	// Exists 路径是否存在.
	Exists(ctx context.Context, path string) (bool, error)
	// ReadAll 读取全部内容.
	ReadAll(ctx context.Context, path string) ([]byte, error)
	// Delete 删除内容，路径不存在不算错误.
	Delete(ctx context.Context, path string) error
	// Ping 检查后端是否可用.
	Ping(ctx context.Context) error
	// Name 后端名称.
	Name() string
}

// New 按配置创建内容存储.
func New(ctx context.Context, cfg *configs.ContentConfig) (ContentStore, error) {
	switch cfg.Type {
	case configs.ContentLocal, "":
		return NewLocalStore(afero.NewOsFs(), cfg.Local.FolderPath), nil
	case configs.ContentS3:
		cli, err := s3c.New(ctx, &cfg.S3)
		if err != nil {
			return nil, err
		}

		return NewS3Store(cli.Client, cli.Bucket()), nil
	default:
		return nil, fmt.Errorf("unsupported content store type: %s", cfg.Type)
	}
}
