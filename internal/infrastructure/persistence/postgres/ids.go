package postgres

import "github.com/google/uuid"

// validID 非法 UUID 直接视为不存在，避免数据库报类型错误
func validID(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}
