package model

// User 用户结构体 (用于登录认证)
import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string         `json:"username" gorm:"uniqueIndex;not null"` // 用户名唯一且不为空
	Password string         `json:"-" gorm:"not null"`                    // 加密后的密码
	Email    string         `json:"email"`
	LdapID   string         `json:"ldap_id"`                  // 校园统一认证账号
	RollNo   string         `json:"roll_no"`                  // 学号
	Roles    pq.StringArray `json:"roles" gorm:"type:text[]"` // 角色列表，如 ["admin"]
}
