package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/d60-Lab/hopon/internal/model"
)

// EventCount 某局的当前人数
type EventCount struct {
    EventID string
    Count   int64
}

// ParticipantRepository 参与关系仓储
type ParticipantRepository interface {
    // Create 依赖 (event_id, user_id) 唯一索引兜底并发重复加入，
    // 冲突时返回 gorm.ErrDuplicatedKey
    Create(ctx context.Context, p *model.EventParticipant) error
    Find(ctx context.Context, eventID, userID string) (*model.EventParticipant, error)
    ListByEvent(ctx context.Context, eventID string) ([]*model.EventParticipant, error)
    ListByUser(ctx context.Context, userID string) ([]*model.EventParticipant, error)
    CountByEvent(ctx context.Context, eventID string) (int64, error)
    CountByUser(ctx context.Context, userID string) (int64, error)
    // CountByEvents 批量统计，供列表视图回填 current_players
    CountByEvents(ctx context.Context, eventIDs []string) (map[string]int64, error)
    // DeleteByEventUser 返回是否真的删除了记录（幂等 leave 用）
    DeleteByEventUser(ctx context.Context, eventID, userID string) (bool, error)
}

type participantRepository struct {
    db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
    return &participantRepository{db: db}
}

func (r *participantRepository) Create(ctx context.Context, p *model.EventParticipant) error {
    if p.ID == "" {
        p.ID = uuid.New().String()
    }
    if p.Team == "" {
        p.Team = model.DefaultTeam
    }
    return r.db.WithContext(ctx).Create(p).Error
}

func (r *participantRepository) Find(ctx context.Context, eventID, userID string) (*model.EventParticipant, error) {
    var p model.EventParticipant
    err := r.db.WithContext(ctx).
        Where("event_id = ? AND user_id = ?", eventID, userID).
        First(&p).Error
    if err != nil {
        return nil, err
    }
    return &p, nil
}

func (r *participantRepository) ListByEvent(ctx context.Context, eventID string) ([]*model.EventParticipant, error) {
    var res []*model.EventParticipant
    err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&res).Error
    return res, err
}

func (r *participantRepository) ListByUser(ctx context.Context, userID string) ([]*model.EventParticipant, error) {
    var res []*model.EventParticipant
    err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&res).Error
    return res, err
}

func (r *participantRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).
        Model(&model.EventParticipant{}).
        Where("event_id = ?", eventID).
        Count(&cnt).Error
    return cnt, err
}

func (r *participantRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).
        Model(&model.EventParticipant{}).
        Where("user_id = ?", userID).
        Count(&cnt).Error
    return cnt, err
}

func (r *participantRepository) CountByEvents(ctx context.Context, eventIDs []string) (map[string]int64, error) {
    out := make(map[string]int64, len(eventIDs))
    if len(eventIDs) == 0 {
        return out, nil
    }
    var rows []EventCount
    err := r.db.WithContext(ctx).
        Model(&model.EventParticipant{}).
        Select("event_id, COUNT(*) AS count").
        Where("event_id IN ?", eventIDs).
        Group("event_id").
        Scan(&rows).Error
    if err != nil {
        return nil, err
    }
    for _, row := range rows {
        out[row.EventID] = row.Count
    }
    return out, nil
}

func (r *participantRepository) DeleteByEventUser(ctx context.Context, eventID, userID string) (bool, error) {
    res := r.db.WithContext(ctx).
        Where("event_id = ? AND user_id = ?", eventID, userID).
        Delete(&model.EventParticipant{})
    if res.Error != nil {
        return false, res.Error
    }
    return res.RowsAffected > 0, nil
}
