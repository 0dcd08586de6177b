package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/d60-Lab/hopon/internal/model"
)

// UserRepository 用户仓储
type UserRepository interface {
    // Create username/email 依赖唯一索引，冲突返回 gorm.ErrDuplicatedKey
    Create(ctx context.Context, u *model.User) error
    GetByID(ctx context.Context, id string) (*model.User, error)
    ListAll(ctx context.Context) ([]*model.User, error)
}

type userRepository struct {
    db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
    if u.ID == "" {
        u.ID = uuid.New().String()
    }
    return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
    var u model.User
    if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
        return nil, err
    }
    return &u, nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]*model.User, error) {
    var res []*model.User
    err := r.db.WithContext(ctx).Find(&res).Error
    return res, err
}
