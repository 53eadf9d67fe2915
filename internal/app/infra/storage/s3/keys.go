package s3

import "fmt"

// 用户数据文件类型
const (
	KindPersonal  = "personal"
	KindFinancial = "financial"
	KindHealth    = "health"
	KindAll       = "all"
)

// UserKinds 组成完整用户文档的文件类型，按合并顺序排列
var UserKinds = []string{KindPersonal, KindFinancial, KindHealth}

// UserKey 用户数据文件的对象 key：users/{user_id}/{kind}.json
func UserKey(userID, kind string) string {
	return fmt.Sprintf("users/%s/%s.json", userID, kind)
}

// IsUserKind 判断 kind 是否为单个文件类型
func IsUserKind(kind string) bool {
	for _, k := range UserKinds {
		if k == kind {
			return true
		}
	}
	return false
}
