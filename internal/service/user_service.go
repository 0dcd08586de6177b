package service

import (
    "context"
    "errors"
    "time"

    "gorm.io/gorm"

    "github.com/d60-Lab/hopon/internal/cache"
    "github.com/d60-Lab/hopon/internal/model"
    "github.com/d60-Lab/hopon/internal/repository"
)

// CreateUserInput 建用户入参
type CreateUserInput struct {
    Username string
    Email    string
    Bio      *string
    Gender   *string
    Rating   *float64
    Location *string
    Sports   *string // 逗号分隔
}

// UserView 用户 JSON 视图；sports 从逗号分隔展开为数组
type UserView struct {
    *model.User
    Sports []string `json:"sports"`
}

// UserWithStats 发现页视图：用户 + 已加入局数
type UserWithStats struct {
    UserView
    EventsCount int64 `json:"events_count"`
}

func NewUserView(u *model.User) *UserView {
    return &UserView{User: u, Sports: u.SportList()}
}

// UserService 用户服务
type UserService interface {
    Create(ctx context.Context, in CreateUserInput) (*UserView, error)
    Get(ctx context.Context, id string) (*UserView, error)
    // Nearby 发现页：全部用户附带 events_count
    Nearby(ctx context.Context) ([]*UserWithStats, error)
}

type userService struct {
    userRepo repository.UserRepository
    counts   *cache.Counts
}

func NewUserService(userRepo repository.UserRepository, counts *cache.Counts) UserService {
    return &userService{userRepo: userRepo, counts: counts}
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*UserView, error) {
    u := &model.User{
        Username:  in.Username,
        Email:     in.Email,
        Bio:       in.Bio,
        Gender:    in.Gender,
        Rating:    in.Rating,
        Location:  in.Location,
        Sports:    in.Sports,
        CreatedAt: time.Now(),
    }
    if err := s.userRepo.Create(ctx, u); err != nil {
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            return nil, ErrDuplicateUser
        }
        return nil, err
    }
    return NewUserView(u), nil
}

func (s *userService) Get(ctx context.Context, id string) (*UserView, error) {
    u, err := s.userRepo.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return NewUserView(u), nil
}

func (s *userService) Nearby(ctx context.Context) ([]*UserWithStats, error) {
    users, err := s.userRepo.ListAll(ctx)
    if err != nil {
        return nil, err
    }
    out := make([]*UserWithStats, len(users))
    for i, u := range users {
        n, err := s.counts.UserJoinedCount(ctx, u.ID)
        if err != nil {
            return nil, err
        }
        out[i] = &UserWithStats{UserView: *NewUserView(u), EventsCount: n}
    }
    return out, nil
}
