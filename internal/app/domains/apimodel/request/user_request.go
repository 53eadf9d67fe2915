package request

// CreatePersonalRequest 新增个人信息请求
type CreatePersonalRequest struct {
	UserID      string  `json:"user_id" binding:"required" example:"u-1001"`
	Name        string  `json:"name" binding:"required" example:"Jane Doe"`
	Email       string  `json:"email" binding:"required,email" example:"jane@example.com"`
	Phone       *string `json:"phone" example:"+1-415-555-0100"`
	Address     *string `json:"address" example:"1 Market St, San Francisco"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02" example:"1990-05-17"`
}

// UpdatePersonalRequest 更新个人信息请求，未提供的字段保持不变
type UpdatePersonalRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
}

// FinancialFields 财务信息字段
type FinancialFields struct {
	AccountNumber *string  `json:"account_number" example:"DE89370400440532013000"`
	CreditScore   *int     `json:"credit_score" binding:"omitempty,min=0" example:"720"`
	AnnualIncome  *float64 `json:"annual_income" example:"85000"`
	TotalDebt     *float64 `json:"total_debt" example:"12000.5"`
}

// CreateFinancialRequest 新增财务信息请求
type CreateFinancialRequest struct {
	UserID string `json:"user_id" binding:"required" example:"u-1001"`
	FinancialFields
}

// UpdateFinancialRequest 更新财务信息请求
type UpdateFinancialRequest struct {
	FinancialFields
}

// HealthFields 健康信息字段
type HealthFields struct {
	BloodType   *string  `json:"blood_type" example:"O+"`
	Conditions  []string `json:"conditions"`
	Medications []string `json:"medications"`
	Allergies   []string `json:"allergies"`
}

// CreateHealthRequest 新增健康信息请求
type CreateHealthRequest struct {
	UserID string `json:"user_id" binding:"required" example:"u-1001"`
	HealthFields
}

// UpdateHealthRequest 更新健康信息请求
type UpdateHealthRequest struct {
	HealthFields
}

// SQSSendRequest 发送用户数据到队列请求
type SQSSendRequest struct {
	UserID                 string  `json:"user_id" binding:"required" example:"u-1001"`
	DataType               string  `json:"data_type" binding:"required" example:"all"`
	MessageGroupID         *string `json:"message_group_id" example:"group-A"`
	MessageDeduplicationID *string `json:"message_deduplication_id"`
}
