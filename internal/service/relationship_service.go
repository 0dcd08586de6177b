package service

import (
    "context"

    "github.com/d60-Lab/hopon/internal/repository"
)

// RelationshipService 关系链服务
type RelationshipService interface {
    // Follow 返回是否本来就已关注（幂等）
    Follow(ctx context.Context, followerID, followeeID string) (bool, error)
    // Unfollow 返回是否真的取消了关注（幂等 no-op）
    Unfollow(ctx context.Context, followerID, followeeID string) (bool, error)
    ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error)
    ListFans(ctx context.Context, userID string, page, pageSize int) ([]string, error)
}

type relationshipService struct {
    followRepo repository.FollowRepository
}

func NewRelationshipService(followRepo repository.FollowRepository) RelationshipService {
    return &relationshipService{followRepo: followRepo}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, followeeID string) (bool, error) {
    if followerID == followeeID {
        return false, ErrFollowSelf
    }
    already, err := s.followRepo.Exists(ctx, followerID, followeeID)
    if err != nil {
        return false, err
    }
    if already {
        return true, nil
    }
    // 并发下重复 Create 由唯一索引 + OnConflict DoNothing 吸收
    if err := s.followRepo.Create(ctx, followerID, followeeID); err != nil {
        return false, err
    }
    return false, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, followeeID string) (bool, error) {
    return s.followRepo.Delete(ctx, followerID, followeeID)
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
    offset, limit := pageWindow(page, pageSize)
    items, err := s.followRepo.ListFollowings(ctx, userID, offset, limit)
    if err != nil {
        return nil, err
    }
    res := make([]string, len(items))
    for i, it := range items {
        res[i] = it.FolloweeID
    }
    return res, nil
}

func (s *relationshipService) ListFans(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
    offset, limit := pageWindow(page, pageSize)
    items, err := s.followRepo.ListFans(ctx, userID, offset, limit)
    if err != nil {
        return nil, err
    }
    res := make([]string, len(items))
    for i, it := range items {
        res[i] = it.FollowerID
    }
    return res, nil
}

func pageWindow(page, pageSize int) (offset, limit int) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 10
    }
    return (page - 1) * pageSize, pageSize
}
