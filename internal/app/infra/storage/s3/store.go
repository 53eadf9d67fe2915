package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// API S3 SDK 中用到的方法子集，便于测试替换
type API interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// Store 以 JSON 文档形式读写单个 bucket 中的对象
type Store struct {
	api    API
	bucket string
}

// NewStore 创建 Store
func NewStore(api API, bucket string) *Store {
	return &Store{api: api, bucket: bucket}
}

// NewFromConfig 根据 aws.Config 创建 Store
// pathStyle 为 true 时使用 path-style 寻址（LocalStack 需要）
func NewFromConfig(cfg aws.Config, bucket string, pathStyle bool) *Store {
	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		o.UsePathStyle = pathStyle
	})
	return NewStore(client, bucket)
}

// Bucket 返回 bucket 名称
func (s *Store) Bucket() string {
	return s.bucket
}

// ReadJSON 读取并解析 JSON 对象
// key 不存在时返回 outcome.NotFound，不视为错误
func (s *Store) ReadJSON(ctx context.Context, key string) (map[string]interface{}, outcome.Status, error) {
	out, err := s.api.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, outcome.NotFound, nil
		}
		return nil, outcome.Unknown, fmt.Errorf("get object %s failed: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, outcome.Unknown, fmt.Errorf("read object %s failed: %w", key, err)
	}

	var content map[string]interface{}
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, outcome.Unknown, fmt.Errorf("decode object %s failed: %w", key, err)
	}
	if content == nil {
		return nil, outcome.Unknown, fmt.Errorf("decode object %s failed: document is not a JSON object", key)
	}
	return content, outcome.Found, nil
}

// UploadJSON 以缩进 JSON 写入对象
func (s *Store) UploadJSON(ctx context.Context, key string, content map[string]interface{}) error {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("encode object %s failed: %w", key, err)
	}

	_, err = s.api.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object %s failed: %w", key, err)
	}
	return nil
}

// UpdateJSON 读取对象、浅合并 updates 后写回，返回合并后的文档
// key 不存在时返回 outcome.NotFound
func (s *Store) UpdateJSON(ctx context.Context, key string, updates map[string]interface{}) (map[string]interface{}, outcome.Status, error) {
	current, status, err := s.ReadJSON(ctx, key)
	if err != nil || status == outcome.NotFound {
		return nil, status, err
	}

	for k, v := range updates {
		current[k] = v
	}
	if err := s.UploadJSON(ctx, key, current); err != nil {
		return nil, outcome.Unknown, err
	}
	return current, outcome.Updated, nil
}

// IsNotFound 判断是否为对象不存在错误
func IsNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
