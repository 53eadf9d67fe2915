package svstorage

import (
	"context"
	"fmt"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/entity/etuser"
	s3store "github.com/anilpotu/aws-s3-service/internal/app/infra/storage/s3"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/errorx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// ObjectStore JSON 文档存储接口（s3.Store 实现）
type ObjectStore interface {
	ReadJSON(ctx context.Context, key string) (map[string]interface{}, outcome.Status, error)
	UploadJSON(ctx context.Context, key string, content map[string]interface{}) error
	UpdateJSON(ctx context.Context, key string, updates map[string]interface{}) (map[string]interface{}, outcome.Status, error)
}

// Notifier 变更通知接口（sns.Client 实现）
type Notifier interface {
	Publish(ctx context.Context, message, subject string) (string, error)
}

// 通知主题
const (
	SubjectUpload = "S3 File Upload"
	SubjectUpdate = "S3 File Update"
)

// StorageService 对象存储服务
// 写操作成功后发布 SNS 通知
type StorageService struct {
	store    ObjectStore
	notifier Notifier
	logger   logger.Logger
}

// NewStorageService 创建对象存储服务
func NewStorageService(store ObjectStore, notifier Notifier, logger logger.Logger) *StorageService {
	return &StorageService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// ReadFile 读取 JSON 文件
func (s *StorageService) ReadFile(ctx context.Context, key string) (map[string]interface{}, outcome.Status, error) {
	return s.store.ReadJSON(ctx, key)
}

// UploadFile 上传 JSON 文件并发布通知
func (s *StorageService) UploadFile(ctx context.Context, key string, content map[string]interface{}) error {
	if err := s.store.UploadJSON(ctx, key, content); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Uploaded S3 file", "key", key)

	if _, err := s.notifier.Publish(ctx, "S3 file uploaded: "+key, SubjectUpload); err != nil {
		return fmt.Errorf("notify upload of %s failed: %w", key, err)
	}
	return nil
}

// UpdateFile 合并更新 JSON 文件，更新成功后发布通知
func (s *StorageService) UpdateFile(ctx context.Context, key string, updates map[string]interface{}) (map[string]interface{}, outcome.Status, error) {
	merged, status, err := s.store.UpdateJSON(ctx, key, updates)
	if err != nil || status != outcome.Updated {
		return nil, status, err
	}
	s.logger.InfoContext(ctx, "Updated S3 file", "key", key)

	if _, err := s.notifier.Publish(ctx, "S3 file updated: "+key, SubjectUpdate); err != nil {
		return nil, outcome.Unknown, fmt.Errorf("notify update of %s failed: %w", key, err)
	}
	return merged, status, nil
}

// ReadUserFile 读取用户数据文件：users/{user_id}/{kind}.json
// dataType 为 all 时按 personal、financial、health 顺序合并，任一文件缺失即 NotFound
func (s *StorageService) ReadUserFile(ctx context.Context, userID string, dataType etuser.DataType) (map[string]interface{}, outcome.Status, error) {
	if dataType != etuser.DataTypeAll {
		kind := string(dataType)
		if !s3store.IsUserKind(kind) {
			return nil, outcome.Unknown, errorx.ErrInvalidDataType
		}
		return s.store.ReadJSON(ctx, s3store.UserKey(userID, kind))
	}

	merged := map[string]interface{}{}
	for _, kind := range s3store.UserKinds {
		content, status, err := s.store.ReadJSON(ctx, s3store.UserKey(userID, kind))
		if err != nil || status != outcome.Found {
			return nil, status, err
		}
		for k, v := range content {
			merged[k] = v
		}
	}
	return merged, outcome.Found, nil
}
