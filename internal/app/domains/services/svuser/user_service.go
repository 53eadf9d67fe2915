package svuser

import (
	"context"
	"errors"
	"fmt"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/entity/etuser"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/modules/mduser"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/errorx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// UserService 用户数据服务，负责三类用户信息的增删改查
type UserService struct {
	userModule *mduser.UserModule
	logger     logger.Logger
}

// NewUserService 创建用户服务实例
func NewUserService(userModule *mduser.UserModule, logger logger.Logger) *UserService {
	return &UserService{
		userModule: userModule,
		logger:     logger,
	}
}

// CreatePersonal 新增个人信息，user_id 重复返回 errorx.ErrRecordExists
func (s *UserService) CreatePersonal(ctx context.Context, personal *etuser.Personal) error {
	if err := s.userModule.Repo().InsertPersonal(ctx, personal); err != nil {
		return s.insertFailed(ctx, "personal", personal.UserID, err)
	}
	s.logger.InfoContext(ctx, "Inserted personal info", "user_id", personal.UserID)
	return nil
}

// GetPersonal 查询个人信息
func (s *UserService) GetPersonal(ctx context.Context, userID string) (*etuser.Personal, outcome.Status, error) {
	return s.userModule.Repo().GetPersonal(ctx, userID)
}

// UpdatePersonal 更新个人信息
func (s *UserService) UpdatePersonal(ctx context.Context, userID string, patch etuser.PersonalPatch) (*etuser.Personal, outcome.Status, error) {
	p, status, err := s.userModule.Repo().UpdatePersonal(ctx, userID, patch)
	if err != nil {
		return nil, status, fmt.Errorf("update personal info failed: %w", err)
	}
	if status == outcome.Updated {
		s.logger.InfoContext(ctx, "Updated personal info", "user_id", userID)
	}
	return p, status, nil
}

// DeletePersonal 删除个人信息
func (s *UserService) DeletePersonal(ctx context.Context, userID string) (outcome.Status, error) {
	status, err := s.userModule.Repo().DeletePersonal(ctx, userID)
	return s.deleted(ctx, "personal", userID, status, err)
}

// CreateFinancial 新增财务信息
func (s *UserService) CreateFinancial(ctx context.Context, financial *etuser.Financial) error {
	if financial.UserID == "" {
		return etuser.ErrInvalidUserID
	}
	if err := s.userModule.Repo().InsertFinancial(ctx, financial); err != nil {
		return s.insertFailed(ctx, "financial", financial.UserID, err)
	}
	s.logger.InfoContext(ctx, "Inserted financial info", "user_id", financial.UserID)
	return nil
}

// GetFinancial 查询财务信息
func (s *UserService) GetFinancial(ctx context.Context, userID string) (*etuser.Financial, outcome.Status, error) {
	return s.userModule.Repo().GetFinancial(ctx, userID)
}

// UpdateFinancial 更新财务信息
func (s *UserService) UpdateFinancial(ctx context.Context, userID string, patch etuser.FinancialPatch) (*etuser.Financial, outcome.Status, error) {
	f, status, err := s.userModule.Repo().UpdateFinancial(ctx, userID, patch)
	if err != nil {
		return nil, status, fmt.Errorf("update financial info failed: %w", err)
	}
	if status == outcome.Updated {
		s.logger.InfoContext(ctx, "Updated financial info", "user_id", userID)
	}
	return f, status, nil
}

// DeleteFinancial 删除财务信息
func (s *UserService) DeleteFinancial(ctx context.Context, userID string) (outcome.Status, error) {
	status, err := s.userModule.Repo().DeleteFinancial(ctx, userID)
	return s.deleted(ctx, "financial", userID, status, err)
}

// CreateHealth 新增健康信息
func (s *UserService) CreateHealth(ctx context.Context, health *etuser.Health) error {
	if health.UserID == "" {
		return etuser.ErrInvalidUserID
	}
	if err := s.userModule.Repo().InsertHealth(ctx, health); err != nil {
		return s.insertFailed(ctx, "health", health.UserID, err)
	}
	s.logger.InfoContext(ctx, "Inserted health info", "user_id", health.UserID)
	return nil
}

// GetHealth 查询健康信息
func (s *UserService) GetHealth(ctx context.Context, userID string) (*etuser.Health, outcome.Status, error) {
	return s.userModule.Repo().GetHealth(ctx, userID)
}

// UpdateHealth 更新健康信息
func (s *UserService) UpdateHealth(ctx context.Context, userID string, patch etuser.HealthPatch) (*etuser.Health, outcome.Status, error) {
	h, status, err := s.userModule.Repo().UpdateHealth(ctx, userID, patch)
	if err != nil {
		return nil, status, fmt.Errorf("update health info failed: %w", err)
	}
	if status == outcome.Updated {
		s.logger.InfoContext(ctx, "Updated health info", "user_id", userID)
	}
	return h, status, nil
}

// DeleteHealth 删除健康信息
func (s *UserService) DeleteHealth(ctx context.Context, userID string) (outcome.Status, error) {
	status, err := s.userModule.Repo().DeleteHealth(ctx, userID)
	return s.deleted(ctx, "health", userID, status, err)
}

// GetFullRecord 查询用户全部信息
func (s *UserService) GetFullRecord(ctx context.Context, userID string) (*etuser.FullRecord, outcome.Status, error) {
	return s.userModule.GetFullRecord(ctx, userID)
}

func (s *UserService) insertFailed(ctx context.Context, kind, userID string, err error) error {
	if errors.Is(err, errorx.ErrRecordExists) {
		s.logger.WarnContext(ctx, "User record already exists", "kind", kind, "user_id", userID)
		return err
	}
	s.logger.ErrorContext(ctx, "Failed to insert user record", "kind", kind, "user_id", userID, "error", err)
	return fmt.Errorf("insert %s info failed: %w", kind, err)
}

func (s *UserService) deleted(ctx context.Context, kind, userID string, status outcome.Status, err error) (outcome.Status, error) {
	if err != nil {
		return status, fmt.Errorf("delete %s info failed: %w", kind, err)
	}
	if status == outcome.Deleted {
		s.logger.InfoContext(ctx, "Deleted user record", "kind", kind, "user_id", userID)
	}
	return status, nil
}
