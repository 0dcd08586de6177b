package model

import (
	"time"
)

// Event 可加入的运动局（球局）
type Event struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name       string     `json:"name" gorm:"type:varchar(100);not null"`
	Sport      string     `json:"sport" gorm:"type:varchar(50);not null"`
	Location   string     `json:"location" gorm:"type:text;not null"` // 场地/地址
	Notes      *string    `json:"notes" gorm:"type:text"`
	MaxPlayers int        `json:"max_players" gorm:"not null"`
	EventDate  *time.Time `json:"event_date"`
	// 可选坐标，用于附近排序；两者同存同缺
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	SkillLevel *string   `json:"skill_level" gorm:"type:varchar(32)"`
	HostUserID *string   `json:"host_user_id" gorm:"type:varchar(36);index:idx_event_host"`
	CreatedAt  time.Time `json:"created_at" gorm:"index:idx_event_created"`

	// 当前人数为计算字段，不落库
	CurrentPlayers int64 `json:"current_players" gorm:"-"`
}

func (Event) TableName() string { return "events" }

// HasCoordinates 坐标是否完整
func (e *Event) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}
