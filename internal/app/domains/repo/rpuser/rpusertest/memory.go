// Package rpusertest 提供内存版 UserRepository，供上层测试使用
package rpusertest

import (
	"context"
	"sync"
	"time"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/entity/etuser"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/repo/rpuser"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/errorx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

var _ rpuser.UserRepository = (*MemoryRepository)(nil)

// MemoryRepository 并发安全的内存仓储
// Err 非空时所有操作返回该错误
type MemoryRepository struct {
	mu        sync.Mutex
	personal  map[string]etuser.Personal
	financial map[string]etuser.Financial
	health    map[string]etuser.Health

	Err error
}

// NewMemoryRepository 创建内存仓储
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		personal:  map[string]etuser.Personal{},
		financial: map[string]etuser.Financial{},
		health:    map[string]etuser.Health{},
	}
}

func (r *MemoryRepository) InsertPersonal(ctx context.Context, p *etuser.Personal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.personal[p.UserID]; ok {
		return errorx.ErrRecordExists
	}
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	r.personal[p.UserID] = *p
	return nil
}

func (r *MemoryRepository) GetPersonal(ctx context.Context, userID string) (*etuser.Personal, outcome.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, outcome.Unknown, r.Err
	}
	p, ok := r.personal[userID]
	if !ok {
		return nil, outcome.NotFound, nil
	}
	return &p, outcome.Found, nil
}

func (r *MemoryRepository) UpdatePersonal(ctx context.Context, userID string, patch etuser.PersonalPatch) (*etuser.Personal, outcome.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, outcome.Unknown, r.Err
	}
	p, ok := r.personal[userID]
	if !ok {
		return nil, outcome.NotFound, nil
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Phone != nil {
		p.Phone = patch.Phone
	}
	if patch.Address != nil {
		p.Address = patch.Address
	}
	if patch.DateOfBirth != nil {
		p.DateOfBirth = patch.DateOfBirth
	}
	p.UpdatedAt = time.Now()
	r.personal[userID] = p
	return &p, outcome.Updated, nil
}

func (r *MemoryRepository) DeletePersonal(ctx context.Context, userID string) (outcome.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return outcome.Unknown, r.Err
	}
	if _, ok := r.personal[userID]; !ok {
		return outcome.NotFound, nil
	}
	delete(r.personal, userID)
	return outcome.Deleted, nil
}

func (r *MemoryRepository) InsertFinancial(ctx context.Context, f *etuser.Financial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.financial[f.UserID]; ok {
		return errorx.ErrRecordExists
	}
	f.CreatedAt, f.UpdatedAt = time.Now(), time.Now()
	r.financial[f.UserID] = *f
	return nil
}

func (r *MemoryRepository) GetFinancial(ctx context.Context, userID string) (*etuser.Financial, outcome.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, outcome.Unknown, r.Err
	}
	f, ok := r.financial[userID]
	if !ok {
		return nil, outcome.NotFound, nil
	}
	return &f, outcome.Found, nil
}

func (r *MemoryRepository) UpdateFinancial(ctx context.Context, userID string, patch etuser.FinancialPatch) (*etuser.Financial, outcome.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, outcome.Unknown, r.Err
	}
	f, ok := r.financial[userID]
	if !ok {
		return nil, outcome.NotFound, nil
	}
	if patch.AccountNumber != nil {
		f.AccountNumber = patch.AccountNumber
	}
	if patch.CreditScore != nil {
		f.CreditScore = patch.CreditScore
	}
	if patch.AnnualIncome != nil {
		f.AnnualIncome = patch.AnnualIncome
	}
	if patch.TotalDebt != nil {
		f.TotalDebt = patch.TotalDebt
	}
	f.UpdatedAt = time.Now()
	r.financial[userID] = f
	return &f, outcome.Updated, nil
}

func (r *MemoryRepository) DeleteFinancial(ctx context.Context, userID string) (outcome.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return outcome.Unknown, r.Err
	}
	if _, ok := r.financial[userID]; !ok {
		return outcome.NotFound, nil
	}
	delete(r.financial, userID)
	return outcome.Deleted, nil
}

func (r *MemoryRepository) InsertHealth(ctx context.Context, h *etuser.Health) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.health[h.UserID]; ok {
		return errorx.ErrRecordExists
	}
	if h.Conditions == nil {
		h.Conditions = []string{}
	}
	if h.Medications == nil {
		h.Medications = []string{}
	}
	if h.Allergies == nil {
		h.Allergies = []string{}
	}
	h.CreatedAt, h.UpdatedAt = time.Now(), time.Now()
	r.health[h.UserID] = *h
	return nil
}

func (r *MemoryRepository) GetHealth(ctx context.Context, userID string) (*etuser.Health, outcome.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, outcome.Unknown, r.Err
	}
	h, ok := r.health[userID]
	if !ok {
		return nil, outcome.NotFound, nil
	}
	return &h, outcome.Found, nil
}

func (r *MemoryRepository) UpdateHealth(ctx context.Context, userID string, patch etuser.HealthPatch) (*etuser.Health, outcome.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, outcome.Unknown, r.Err
	}
	h, ok := r.health[userID]
	if !ok {
		return nil, outcome.NotFound, nil
	}
	if patch.BloodType != nil {
		h.BloodType = patch.BloodType
	}
	if patch.Conditions != nil {
		h.Conditions = patch.Conditions
	}
	if patch.Medications != nil {
		h.Medications = patch.Medications
	}
	if patch.Allergies != nil {
		h.Allergies = patch.Allergies
	}
	h.UpdatedAt = time.Now()
	r.health[userID] = h
	return &h, outcome.Updated, nil
}

func (r *MemoryRepository) DeleteHealth(ctx context.Context, userID string) (outcome.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return outcome.Unknown, r.Err
	}
	if _, ok := r.health[userID]; !ok {
		return outcome.NotFound, nil
	}
	delete(r.health, userID)
	return outcome.Deleted, nil
}
