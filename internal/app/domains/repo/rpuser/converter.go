package rpuser

import (
	"time"

	"gorm.io/datatypes"

	"github.com/anilpotu/aws-s3-service/common/entity"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/entity/etuser"
)

func toPersonalPO(p *etuser.Personal) *entity.UserPersonal {
	return &entity.UserPersonal{
		UserID:      p.UserID,
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Address:     p.Address,
		DateOfBirth: toDate(p.DateOfBirth),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPersonalEntity(po *entity.UserPersonal) *etuser.Personal {
	return &etuser.Personal{
		UserID:      po.UserID,
		Name:        po.Name,
		Email:       po.Email,
		Phone:       po.Phone,
		Address:     po.Address,
		DateOfBirth: fromDate(po.DateOfBirth),
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}

func personalUpdates(patch etuser.PersonalPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.DateOfBirth != nil {
		updates["date_of_birth"] = datatypes.Date(*patch.DateOfBirth)
	}
	return updates
}

func toFinancialPO(f *etuser.Financial) *entity.UserFinancial {
	return &entity.UserFinancial{
		UserID:        f.UserID,
		AccountNumber: f.AccountNumber,
		CreditScore:   f.CreditScore,
		AnnualIncome:  f.AnnualIncome,
		TotalDebt:     f.TotalDebt,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func toFinancialEntity(po *entity.UserFinancial) *etuser.Financial {
	return &etuser.Financial{
		UserID:        po.UserID,
		AccountNumber: po.AccountNumber,
		CreditScore:   po.CreditScore,
		AnnualIncome:  po.AnnualIncome,
		TotalDebt:     po.TotalDebt,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	}
}

func financialUpdates(patch etuser.FinancialPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.AccountNumber != nil {
		updates["account_number"] = *patch.AccountNumber
	}
	if patch.CreditScore != nil {
		updates["credit_score"] = *patch.CreditScore
	}
	if patch.AnnualIncome != nil {
		updates["annual_income"] = *patch.AnnualIncome
	}
	if patch.TotalDebt != nil {
		updates["total_debt"] = *patch.TotalDebt
	}
	return updates
}

func toHealthPO(h *etuser.Health) *entity.UserHealth {
	return &entity.UserHealth{
		UserID:      h.UserID,
		BloodType:   h.BloodType,
		Conditions:  toJSONSlice(h.Conditions),
		Medications: toJSONSlice(h.Medications),
		Allergies:   toJSONSlice(h.Allergies),
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func toHealthEntity(po *entity.UserHealth) *etuser.Health {
	return &etuser.Health{
		UserID:      po.UserID,
		BloodType:   po.BloodType,
		Conditions:  fromJSONSlice(po.Conditions),
		Medications: fromJSONSlice(po.Medications),
		Allergies:   fromJSONSlice(po.Allergies),
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}

// healthUpdates nil 列表保持不变，空列表表示清空
func healthUpdates(patch etuser.HealthPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.BloodType != nil {
		updates["blood_type"] = *patch.BloodType
	}
	if patch.Conditions != nil {
		updates["conditions"] = toJSONSlice(patch.Conditions)
	}
	if patch.Medications != nil {
		updates["medications"] = toJSONSlice(patch.Medications)
	}
	if patch.Allergies != nil {
		updates["allergies"] = toJSONSlice(patch.Allergies)
	}
	return updates
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}

func fromDate(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

// toJSONSlice 列表列不允许为 NULL
func toJSONSlice(s []string) datatypes.JSONSlice[string] {
	if s == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](s)
}

func fromJSONSlice(s datatypes.JSONSlice[string]) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}
