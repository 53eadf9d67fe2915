package mduser

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/entity/etuser"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/repo/rpuser"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// UserModule 用户数据模块
type UserModule struct {
	userRepo rpuser.UserRepository
}

// NewUserModule 创建用户模块
func NewUserModule(userRepo rpuser.UserRepository) *UserModule {
	return &UserModule{
		userRepo: userRepo,
	}
}

// Repo 返回底层仓储，单表操作直接委托
func (m *UserModule) Repo() rpuser.UserRepository {
	return m.userRepo
}

// GetFullRecord 并发查询三类信息并聚合
// 三类都不存在时返回 outcome.NotFound
func (m *UserModule) GetFullRecord(ctx context.Context, userID string) (*etuser.FullRecord, outcome.Status, error) {
	record := &etuser.FullRecord{UserID: userID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, _, err := m.userRepo.GetPersonal(gctx, userID)
		if err != nil {
			return fmt.Errorf("get personal failed: %w", err)
		}
		record.Personal = p
		return nil
	})
	g.Go(func() error {
		f, _, err := m.userRepo.GetFinancial(gctx, userID)
		if err != nil {
			return fmt.Errorf("get financial failed: %w", err)
		}
		record.Financial = f
		return nil
	})
	g.Go(func() error {
		h, _, err := m.userRepo.GetHealth(gctx, userID)
		if err != nil {
			return fmt.Errorf("get health failed: %w", err)
		}
		record.Health = h
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, outcome.Unknown, err
	}

	if record.Empty() {
		return record, outcome.NotFound, nil
	}
	return record, outcome.Found, nil
}
