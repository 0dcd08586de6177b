package model

import "time"

// EventParticipant 参与关系（某人加入某局）
type EventParticipant struct {
	ID      string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	EventID string  `json:"event_id" gorm:"type:varchar(36);not null;index:idx_participant_event;uniqueIndex:ux_participant_event_user"`
	UserID  *string `json:"user_id" gorm:"type:varchar(36);index:idx_participant_user;uniqueIndex:ux_participant_event_user"`
	// 复合唯一键，避免同一用户重复加入同一局
	// ux_participant_event_user = (event_id, user_id)，user_id 为 NULL 时不参与唯一性（游客可多名）
	PlayerName string    `json:"player_name" gorm:"type:varchar(100);not null"`
	Team       string    `json:"team" gorm:"type:varchar(20);default:team_a"`
	JoinedAt   time.Time `json:"joined_at"`
}

func (EventParticipant) TableName() string { return "event_participants" }

// DefaultTeam 未指定时的分队
const DefaultTeam = "team_a"
