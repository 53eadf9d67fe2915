package rpuser

import (
	"context"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/entity/etuser"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// UserRepository 用户数据仓储接口
// 查询/更新/删除以 outcome.Status 区分记录不存在，error 只表示存储层失败
type UserRepository interface {
	// InsertPersonal 新增个人信息，user_id 已存在时返回 errorx.ErrRecordExists
	InsertPersonal(ctx context.Context, personal *etuser.Personal) error
	GetPersonal(ctx context.Context, userID string) (*etuser.Personal, outcome.Status, error)
	UpdatePersonal(ctx context.Context, userID string, patch etuser.PersonalPatch) (*etuser.Personal, outcome.Status, error)
	DeletePersonal(ctx context.Context, userID string) (outcome.Status, error)

	InsertFinancial(ctx context.Context, financial *etuser.Financial) error
	GetFinancial(ctx context.Context, userID string) (*etuser.Financial, outcome.Status, error)
	UpdateFinancial(ctx context.Context, userID string, patch etuser.FinancialPatch) (*etuser.Financial, outcome.Status, error)
	DeleteFinancial(ctx context.Context, userID string) (outcome.Status, error)

	InsertHealth(ctx context.Context, health *etuser.Health) error
	GetHealth(ctx context.Context, userID string) (*etuser.Health, outcome.Status, error)
	UpdateHealth(ctx context.Context, userID string, patch etuser.HealthPatch) (*etuser.Health, outcome.Status, error)
	DeleteHealth(ctx context.Context, userID string) (outcome.Status, error)
}
