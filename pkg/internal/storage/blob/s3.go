package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	minio "github.com/minio/minio-go/v7"
)

// S3Store 将内容写入 bucket，路径即对象键.
type S3Store struct {
	client *minio.Client
	bucket string
}

// NewS3Store 创建 S3 存储.
func NewS3Store(client *minio.Client, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

// Name 返回后端名称.
func (s *S3Store) Name() string {
	return "s3:" + s.bucket
}

// Put 上传内容.
func (s *S3Store) Put(ctx context.Context, data []byte) (string, error) {
	key := uuid.NewString()

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return key, nil
}

// Exists 对象是否存在.
func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}

	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	return false, fmt.Errorf("stat object %s: %w", key, err)
}

// ReadAll 读取对象全部内容.
func (s *S3Store) ReadAll(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}

	return data, nil
}

// Delete 删除对象，对象不存在时 S3 也返回成功.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}

	return nil
}

// Ping 检查 bucket 是否可访问.
func (s *S3Store) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("bucket %s not found", s.bucket)
	}

	return nil
}
