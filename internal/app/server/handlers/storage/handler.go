package storage

import "github.com/anilpotu/aws-s3-service/internal/app/domains/services/svstorage"

// StorageHandler S3 文件 HTTP 处理器
type StorageHandler struct {
	storageService *svstorage.StorageService
}

// NewStorageHandler 创建 S3 文件处理器实例
func NewStorageHandler(storageService *svstorage.StorageService) *StorageHandler {
	return &StorageHandler{
		storageService: storageService,
	}
}
