package errorx

import "errors"

// 定义业务错误
var (
	ErrRecordExists    = errors.New("record already exists")
	ErrRecordNotFound  = errors.New("record not found")
	ErrInvalidDataType = errors.New("invalid data_type")
)

// BusinessError 业务错误结构
type BusinessError struct {
	Code    int
	Message string
	Err     error
}

// Error 实现 error 接口
func (e *BusinessError) Error() string {
	return e.Message
}

// Unwrap 支持 errors.Is / errors.As
func (e *BusinessError) Unwrap() error {
	return e.Err
}

// Wrap 用业务码包装底层错误
func Wrap(code int, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
