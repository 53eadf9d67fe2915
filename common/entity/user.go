package entity

import (
	"time"

	"gorm.io/datatypes"
)

// UserPersonal 用户个人信息
type UserPersonal struct {
	UserID      string          `gorm:"column:user_id;primaryKey;type:varchar(64)"`
	Name        string          `gorm:"column:name;type:varchar(255);not null"`
	Email       string          `gorm:"column:email;type:varchar(255);not null"`
	Phone       *string         `gorm:"column:phone;type:varchar(64)"`
	Address     *string         `gorm:"column:address;type:text"`
	DateOfBirth *datatypes.Date `gorm:"column:date_of_birth"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (UserPersonal) TableName() string {
	return "users_personal"
}

// UserFinancial 用户财务信息
type UserFinancial struct {
	UserID        string   `gorm:"column:user_id;primaryKey;type:varchar(64)"`
	AccountNumber *string  `gorm:"column:account_number;type:varchar(64)"`
	CreditScore   *int     `gorm:"column:credit_score"`
	AnnualIncome  *float64 `gorm:"column:annual_income;type:numeric(15,2)"`
	TotalDebt     *float64 `gorm:"column:total_debt;type:numeric(15,2)"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (UserFinancial) TableName() string {
	return "users_financial"
}

// UserHealth 用户健康信息，列表字段以 JSON 数组存储
type UserHealth struct {
	UserID      string                      `gorm:"column:user_id;primaryKey;type:varchar(64)"`
	BloodType   *string                     `gorm:"column:blood_type;type:varchar(8)"`
	Conditions  datatypes.JSONSlice[string] `gorm:"column:conditions;not null"`
	Medications datatypes.JSONSlice[string] `gorm:"column:medications;not null"`
	Allergies   datatypes.JSONSlice[string] `gorm:"column:allergies;not null"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (UserHealth) TableName() string {
	return "users_health"
}

// UserModels 需要自动迁移的表
func UserModels() []interface{} {
	return []interface{}{&UserPersonal{}, &UserFinancial{}, &UserHealth{}}
}
