package response

import (
	"time"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/entity/etuser"
)

const dateLayout = "2006-01-02"

// FromPersonalEntity 从领域对象转换为响应 DTO
func FromPersonalEntity(p *etuser.Personal) *PersonalRecord {
	if p == nil {
		return nil
	}
	return &PersonalRecord{
		UserID:      p.UserID,
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Address:     p.Address,
		DateOfBirth: formatDate(p.DateOfBirth),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromFinancialEntity 从领域对象转换为响应 DTO
func FromFinancialEntity(f *etuser.Financial) *FinancialRecord {
	if f == nil {
		return nil
	}
	return &FinancialRecord{
		UserID:        f.UserID,
		AccountNumber: f.AccountNumber,
		CreditScore:   f.CreditScore,
		AnnualIncome:  f.AnnualIncome,
		TotalDebt:     f.TotalDebt,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

// FromHealthEntity 从领域对象转换为响应 DTO
func FromHealthEntity(h *etuser.Health) *HealthRecord {
	if h == nil {
		return nil
	}
	return &HealthRecord{
		UserID:      h.UserID,
		BloodType:   h.BloodType,
		Conditions:  h.Conditions,
		Medications: h.Medications,
		Allergies:   h.Allergies,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

// FromFullRecord 从聚合记录转换为响应 DTO
func FromFullRecord(r *etuser.FullRecord) *UserFullRecord {
	return &UserFullRecord{
		UserID:    r.UserID,
		Personal:  FromPersonalEntity(r.Personal),
		Financial: FromFinancialEntity(r.Financial),
		Health:    FromHealthEntity(r.Health),
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
