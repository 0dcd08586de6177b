package model

import (
	"strings"
	"time"
)

// User 用户
type User struct {
	ID       string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username string  `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	Email    string  `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Bio      *string `json:"bio" gorm:"type:text"`
	Gender   *string `json:"gender" gorm:"type:varchar(20)"`
	// 发现页字段
	Rating    *float64  `json:"rating"`
	Location  *string   `json:"location" gorm:"type:varchar(100)"`
	Sports    *string   `json:"-" gorm:"type:text;column:sports"` // 逗号分隔，JSON 输出见 SportList
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// SportList 将逗号分隔的 sports 拆成列表；空值返回 nil
func (u *User) SportList() []string {
	if u.Sports == nil || strings.TrimSpace(*u.Sports) == "" {
		return nil
	}
	parts := strings.Split(*u.Sports, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
