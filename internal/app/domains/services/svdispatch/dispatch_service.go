package svdispatch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/response"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/entity/etuser"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/modules/mduser"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/errorx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// Producer 队列生产者接口（producer.Producer 实现）
type Producer interface {
	Send(ctx context.Context, payload map[string]interface{}, groupID, dedupID string) (string, error)
}

// DispatchService 将数据库中的用户数据发送到队列
type DispatchService struct {
	userModule *mduser.UserModule
	producer   Producer
	logger     logger.Logger
}

// NewDispatchService 创建分发服务
func NewDispatchService(userModule *mduser.UserModule, producer Producer, logger logger.Logger) *DispatchService {
	return &DispatchService{
		userModule: userModule,
		producer:   producer,
		logger:     logger,
	}
}

// SendUserData 查询用户数据并发送到队列，返回消息 ID
// 消息体：{"user_id", "data_type", "data"}，日期字段为 ISO 字符串
// 错误：
//   - data_type 非法：BusinessError(422) 包装 errorx.ErrInvalidDataType
//   - 记录不存在：BusinessError(404) 包装 errorx.ErrRecordNotFound
func (s *DispatchService) SendUserData(ctx context.Context, userID, dataType, groupID, dedupID string) (string, error) {
	dt, ok := etuser.ParseDataType(dataType)
	if !ok {
		return "", errorx.Wrap(http.StatusUnprocessableEntity,
			fmt.Sprintf("Invalid data_type '%s'. Must be one of: personal, financial, health, all", dataType),
			errorx.ErrInvalidDataType)
	}

	data, err := s.loadData(ctx, userID, dt)
	if err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"user_id":   userID,
		"data_type": string(dt),
		"data":      data,
	}
	messageID, err := s.producer.Send(ctx, payload, groupID, dedupID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to send user data to queue", "user_id", userID, "data_type", dt, "error", err)
		return "", err
	}

	s.logger.InfoContext(ctx, "Sent user data to queue",
		"user_id", userID,
		"data_type", dt,
		"message_id", messageID,
	)
	return messageID, nil
}

func (s *DispatchService) loadData(ctx context.Context, userID string, dt etuser.DataType) (interface{}, error) {
	repo := s.userModule.Repo()

	var (
		data   interface{}
		status outcome.Status
		err    error
	)
	switch dt {
	case etuser.DataTypePersonal:
		var p *etuser.Personal
		p, status, err = repo.GetPersonal(ctx, userID)
		data = response.FromPersonalEntity(p)
	case etuser.DataTypeFinancial:
		var f *etuser.Financial
		f, status, err = repo.GetFinancial(ctx, userID)
		data = response.FromFinancialEntity(f)
	case etuser.DataTypeHealth:
		var h *etuser.Health
		h, status, err = repo.GetHealth(ctx, userID)
		data = response.FromHealthEntity(h)
	case etuser.DataTypeAll:
		var r *etuser.FullRecord
		r, status, err = s.userModule.GetFullRecord(ctx, userID)
		if r != nil {
			data = response.FromFullRecord(r)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load %s data failed: %w", dt, err)
	}
	if status != outcome.Found {
		return nil, errorx.Wrap(http.StatusNotFound, notFoundMessage(dt, userID), errorx.ErrRecordNotFound)
	}
	return data, nil
}

func notFoundMessage(dt etuser.DataType, userID string) string {
	switch dt {
	case etuser.DataTypePersonal:
		return "Personal info not found for user " + userID
	case etuser.DataTypeFinancial:
		return "Financial info not found for user " + userID
	case etuser.DataTypeHealth:
		return "Health info not found for user " + userID
	default:
		return "No records found for user " + userID
	}
}
