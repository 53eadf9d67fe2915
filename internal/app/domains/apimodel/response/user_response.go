package response

import "time"

// PersonalRecord 个人信息
type PersonalRecord struct {
	UserID      string    `json:"user_id" example:"u-1001"`
	Name        string    `json:"name" example:"Jane Doe"`
	Email       string    `json:"email" example:"jane@example.com"`
	Phone       *string   `json:"phone"`
	Address     *string   `json:"address"`
	DateOfBirth *string   `json:"date_of_birth" example:"1990-05-17"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FinancialRecord 财务信息
type FinancialRecord struct {
	UserID        string    `json:"user_id"`
	AccountNumber *string   `json:"account_number"`
	CreditScore   *int      `json:"credit_score"`
	AnnualIncome  *float64  `json:"annual_income"`
	TotalDebt     *float64  `json:"total_debt"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HealthRecord 健康信息
type HealthRecord struct {
	UserID      string    `json:"user_id"`
	BloodType   *string   `json:"blood_type"`
	Conditions  []string  `json:"conditions"`
	Medications []string  `json:"medications"`
	Allergies   []string  `json:"allergies"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserFullRecord 聚合的用户记录，不存在的部分为 null
type UserFullRecord struct {
	UserID    string           `json:"user_id"`
	Personal  *PersonalRecord  `json:"personal"`
	Financial *FinancialRecord `json:"financial"`
	Health    *HealthRecord    `json:"health"`
}

// SQSSendResponse 发送结果
type SQSSendResponse struct {
	MessageID string `json:"message_id"`
	UserID    string `json:"user_id"`
	DataType  string `json:"data_type"`
}
