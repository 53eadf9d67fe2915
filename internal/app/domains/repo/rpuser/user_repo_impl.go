package rpuser

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/anilpotu/aws-s3-service/common/entity"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/entity/etuser"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/errorx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// UserRepositoryImpl 用户数据仓储实现（GORM，postgres / mysql）
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// InsertPersonal 新增个人信息
func (r *UserRepositoryImpl) InsertPersonal(ctx context.Context, personal *etuser.Personal) error {
	po := toPersonalPO(personal)
	if err := insertRow(ctx, r.db, po); err != nil {
		return err
	}
	// 回写数据库生成的时间戳
	*personal = *toPersonalEntity(po)
	return nil
}

// GetPersonal 查询个人信息
func (r *UserRepositoryImpl) GetPersonal(ctx context.Context, userID string) (*etuser.Personal, outcome.Status, error) {
	po, status, err := getRow[entity.UserPersonal](ctx, r.db, userID)
	if err != nil || status != outcome.Found {
		return nil, status, err
	}
	return toPersonalEntity(po), status, nil
}

// UpdatePersonal 更新个人信息，只修改 patch 中非空字段
func (r *UserRepositoryImpl) UpdatePersonal(ctx context.Context, userID string, patch etuser.PersonalPatch) (*etuser.Personal, outcome.Status, error) {
	po, status, err := updateRow[entity.UserPersonal](ctx, r.db, userID, personalUpdates(patch))
	if err != nil || status != outcome.Updated {
		return nil, status, err
	}
	return toPersonalEntity(po), status, nil
}

// DeletePersonal 删除个人信息
func (r *UserRepositoryImpl) DeletePersonal(ctx context.Context, userID string) (outcome.Status, error) {
	return deleteRow[entity.UserPersonal](ctx, r.db, userID)
}

// InsertFinancial 新增财务信息
func (r *UserRepositoryImpl) InsertFinancial(ctx context.Context, financial *etuser.Financial) error {
	po := toFinancialPO(financial)
	if err := insertRow(ctx, r.db, po); err != nil {
		return err
	}
	*financial = *toFinancialEntity(po)
	return nil
}

// GetFinancial 查询财务信息
func (r *UserRepositoryImpl) GetFinancial(ctx context.Context, userID string) (*etuser.Financial, outcome.Status, error) {
	po, status, err := getRow[entity.UserFinancial](ctx, r.db, userID)
	if err != nil || status != outcome.Found {
		return nil, status, err
	}
	return toFinancialEntity(po), status, nil
}

// UpdateFinancial 更新财务信息
func (r *UserRepositoryImpl) UpdateFinancial(ctx context.Context, userID string, patch etuser.FinancialPatch) (*etuser.Financial, outcome.Status, error) {
	po, status, err := updateRow[entity.UserFinancial](ctx, r.db, userID, financialUpdates(patch))
	if err != nil || status != outcome.Updated {
		return nil, status, err
	}
	return toFinancialEntity(po), status, nil
}

// DeleteFinancial 删除财务信息
func (r *UserRepositoryImpl) DeleteFinancial(ctx context.Context, userID string) (outcome.Status, error) {
	return deleteRow[entity.UserFinancial](ctx, r.db, userID)
}

// InsertHealth 新增健康信息
func (r *UserRepositoryImpl) InsertHealth(ctx context.Context, health *etuser.Health) error {
	po := toHealthPO(health)
	if err := insertRow(ctx, r.db, po); err != nil {
		return err
	}
	*health = *toHealthEntity(po)
	return nil
}

// GetHealth 查询健康信息
func (r *UserRepositoryImpl) GetHealth(ctx context.Context, userID string) (*etuser.Health, outcome.Status, error) {
	po, status, err := getRow[entity.UserHealth](ctx, r.db, userID)
	if err != nil || status != outcome.Found {
		return nil, status, err
	}
	return toHealthEntity(po), status, nil
}

// UpdateHealth 更新健康信息
func (r *UserRepositoryImpl) UpdateHealth(ctx context.Context, userID string, patch etuser.HealthPatch) (*etuser.Health, outcome.Status, error) {
	po, status, err := updateRow[entity.UserHealth](ctx, r.db, userID, healthUpdates(patch))
	if err != nil || status != outcome.Updated {
		return nil, status, err
	}
	return toHealthEntity(po), status, nil
}

// DeleteHealth 删除健康信息
func (r *UserRepositoryImpl) DeleteHealth(ctx context.Context, userID string) (outcome.Status, error) {
	return deleteRow[entity.UserHealth](ctx, r.db, userID)
}

// insertRow 插入一行，主键冲突转换为 errorx.ErrRecordExists（依赖 TranslateError）
func insertRow[T any](ctx context.Context, db *gorm.DB, po *T) error {
	if err := db.WithContext(ctx).Create(po).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errorx.ErrRecordExists
		}
		return err
	}
	return nil
}

func getRow[T any](ctx context.Context, db *gorm.DB, userID string) (*T, outcome.Status, error) {
	var po T
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outcome.NotFound, nil
		}
		return nil, outcome.Unknown, err
	}
	return &po, outcome.Found, nil
}

// updateRow 更新并读回整行；updated_at 总是刷新
func updateRow[T any](ctx context.Context, db *gorm.DB, userID string, updates map[string]interface{}) (*T, outcome.Status, error) {
	updates["updated_at"] = time.Now()

	var po T
	status := outcome.NotFound
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(new(T)).Where("user_id = ?", userID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Where("user_id = ?", userID).First(&po).Error; err != nil {
			return err
		}
		status = outcome.Updated
		return nil
	})
	if err != nil {
		return nil, outcome.Unknown, err
	}
	if status != outcome.Updated {
		return nil, status, nil
	}
	return &po, status, nil
}

func deleteRow[T any](ctx context.Context, db *gorm.DB, userID string) (outcome.Status, error) {
	res := db.WithContext(ctx).Where("user_id = ?", userID).Delete(new(T))
	if res.Error != nil {
		return outcome.Unknown, res.Error
	}
	if res.RowsAffected == 0 {
		return outcome.NotFound, nil
	}
	return outcome.Deleted, nil
}
