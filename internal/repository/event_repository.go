package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/d60-Lab/hopon/internal/model"
)

// EventRepository 球局仓储
type EventRepository interface {
    Create(ctx context.Context, e *model.Event) error
    GetByID(ctx context.Context, id string) (*model.Event, error)
    // ListNewestFirst 按创建时间倒序返回全部球局
    ListNewestFirst(ctx context.Context) ([]*model.Event, error)
    ListAll(ctx context.Context) ([]*model.Event, error)
    ListByHost(ctx context.Context, hostUserID string) ([]*model.Event, error)
    ListByIDs(ctx context.Context, ids []string) ([]*model.Event, error)
}

type eventRepository struct {
    db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository { return &eventRepository{db: db} }

func (r *eventRepository) Create(ctx context.Context, e *model.Event) error {
    if e.ID == "" {
        e.ID = uuid.New().String()
    }
    return r.db.WithContext(ctx).Create(e).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
    var e model.Event
    if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
        return nil, err
    }
    return &e, nil
}

func (r *eventRepository) ListNewestFirst(ctx context.Context) ([]*model.Event, error) {
    var res []*model.Event
    err := r.db.WithContext(ctx).Order("created_at DESC").Find(&res).Error
    return res, err
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*model.Event, error) {
    var res []*model.Event
    err := r.db.WithContext(ctx).Find(&res).Error
    return res, err
}

func (r *eventRepository) ListByHost(ctx context.Context, hostUserID string) ([]*model.Event, error) {
    var res []*model.Event
    err := r.db.WithContext(ctx).Where("host_user_id = ?", hostUserID).Find(&res).Error
    return res, err
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []string) ([]*model.Event, error) {
    if len(ids) == 0 {
        return []*model.Event{}, nil
    }
    var res []*model.Event
    err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
    return res, err
}
