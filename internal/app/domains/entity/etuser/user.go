package etuser

import (
	"errors"
	"time"
)

// DataType 用户数据类型
type DataType string

const (
	DataTypePersonal  DataType = "personal"
	DataTypeFinancial DataType = "financial"
	DataTypeHealth    DataType = "health"
	DataTypeAll       DataType = "all"
)

// 错误定义
var (
	ErrInvalidUserID = errors.New("user_id cannot be empty")
	ErrInvalidName   = errors.New("name cannot be empty")
	ErrInvalidEmail  = errors.New("email cannot be empty")
)

// ParseDataType 解析数据类型
func ParseDataType(s string) (DataType, bool) {
	switch dt := DataType(s); dt {
	case DataTypePersonal, DataTypeFinancial, DataTypeHealth, DataTypeAll:
		return dt, true
	default:
		return "", false
	}
}

// Personal 个人信息
type Personal struct {
	UserID      string
	Name        string
	Email       string
	Phone       *string
	Address     *string
	DateOfBirth *time.Time // 只使用日期部分
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPersonal 创建个人信息（工厂方法）
func NewPersonal(userID, name, email string) (*Personal, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if name == "" {
		return nil, ErrInvalidName
	}
	if email == "" {
		return nil, ErrInvalidEmail
	}
	return &Personal{UserID: userID, Name: name, Email: email}, nil
}

// Financial 财务信息
type Financial struct {
	UserID        string
	AccountNumber *string
	CreditScore   *int
	AnnualIncome  *float64
	TotalDebt     *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Health 健康信息
type Health struct {
	UserID      string
	BloodType   *string
	Conditions  []string
	Medications []string
	Allergies   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PersonalPatch 个人信息部分更新，nil 字段保持不变
type PersonalPatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Address     *string
	DateOfBirth *time.Time
}

// FinancialPatch 财务信息部分更新
type FinancialPatch struct {
	AccountNumber *string
	CreditScore   *int
	AnnualIncome  *float64
	TotalDebt     *float64
}

// HealthPatch 健康信息部分更新
type HealthPatch struct {
	BloodType   *string
	Conditions  []string
	Medications []string
	Allergies   []string
}

// FullRecord 聚合的用户记录
type FullRecord struct {
	UserID    string
	Personal  *Personal
	Financial *Financial
	Health    *Health
}

// Empty 三类信息都不存在
func (r *FullRecord) Empty() bool {
	return r.Personal == nil && r.Financial == nil && r.Health == nil
}
