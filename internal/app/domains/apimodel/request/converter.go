package request

import (
	"fmt"
	"time"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/entity/etuser"
)

// DateLayout 日期字段格式
const DateLayout = "2006-01-02"

// ToEntity 将 Request DTO 转换为领域对象
func (r *CreatePersonalRequest) ToEntity() (*etuser.Personal, error) {
	p, err := etuser.NewPersonal(r.UserID, r.Name, r.Email)
	if err != nil {
		return nil, err
	}
	p.Phone = r.Phone
	p.Address = r.Address
	if p.DateOfBirth, err = parseDate(r.DateOfBirth); err != nil {
		return nil, err
	}
	return p, nil
}

// ToPatch 转换为部分更新
func (r *UpdatePersonalRequest) ToPatch() (etuser.PersonalPatch, error) {
	dob, err := parseDate(r.DateOfBirth)
	if err != nil {
		return etuser.PersonalPatch{}, err
	}
	return etuser.PersonalPatch{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		DateOfBirth: dob,
	}, nil
}

// ToEntity 将 Request DTO 转换为领域对象
func (r *CreateFinancialRequest) ToEntity() *etuser.Financial {
	return &etuser.Financial{
		UserID:        r.UserID,
		AccountNumber: r.AccountNumber,
		CreditScore:   r.CreditScore,
		AnnualIncome:  r.AnnualIncome,
		TotalDebt:     r.TotalDebt,
	}
}

// ToPatch 转换为部分更新
func (r *UpdateFinancialRequest) ToPatch() etuser.FinancialPatch {
	return etuser.FinancialPatch{
		AccountNumber: r.AccountNumber,
		CreditScore:   r.CreditScore,
		AnnualIncome:  r.AnnualIncome,
		TotalDebt:     r.TotalDebt,
	}
}

// ToEntity 将 Request DTO 转换为领域对象，列表缺省为空
func (r *CreateHealthRequest) ToEntity() *etuser.Health {
	return &etuser.Health{
		UserID:      r.UserID,
		BloodType:   r.BloodType,
		Conditions:  orEmpty(r.Conditions),
		Medications: orEmpty(r.Medications),
		Allergies:   orEmpty(r.Allergies),
	}
}

// ToPatch 转换为部分更新，未提供的列表保持不变
func (r *UpdateHealthRequest) ToPatch() etuser.HealthPatch {
	return etuser.HealthPatch{
		BloodType:   r.BloodType,
		Conditions:  r.Conditions,
		Medications: r.Medications,
		Allergies:   r.Allergies,
	}
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", *s, err)
	}
	return &t, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
