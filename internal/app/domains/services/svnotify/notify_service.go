package svnotify

import (
	"context"
	"fmt"

	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
)

// Publisher 通知主题发布接口（sns.Client 实现）
type Publisher interface {
	Publish(ctx context.Context, message, subject string) (string, error)
}

// NotifyService 通知服务
type NotifyService struct {
	publisher Publisher
	logger    logger.Logger
}

// NewNotifyService 创建通知服务
func NewNotifyService(publisher Publisher, logger logger.Logger) *NotifyService {
	return &NotifyService{
		publisher: publisher,
		logger:    logger,
	}
}

// Publish 发布自定义消息，subject 为空时不设置主题
func (s *NotifyService) Publish(ctx context.Context, message, subject string) (string, error) {
	messageID, err := s.publisher.Publish(ctx, message, subject)
	if err != nil {
		return "", fmt.Errorf("publish notification failed: %w", err)
	}
	s.logger.InfoContext(ctx, "Published notification", "message_id", messageID)
	return messageID, nil
}
