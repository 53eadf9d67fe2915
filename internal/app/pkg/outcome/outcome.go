// Package outcome 定义存储类操作的显式结果状态。
// 调用方根据 Status 分支，Provider 级别的失败仍以 error 返回。
package outcome

// Status 操作结果
type Status int

const (
	Unknown Status = iota
	Found
	NotFound
	Created
	Updated
	Deleted
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}
