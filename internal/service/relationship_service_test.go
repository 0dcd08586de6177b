package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/d60-Lab/hopon/internal/model"
    "github.com/d60-Lab/hopon/internal/repository"
)

func TestFollow_SelfRejected(t *testing.T) {
    db := setupTestDB(t)
    svc := NewRelationshipService(repository.NewFollowRepository(db))

    _, err := svc.Follow(context.Background(), "u1", "u1")
    require.ErrorIs(t, err, ErrFollowSelf)
}

func TestFollow_DuplicateKeepsSingleRow(t *testing.T) {
    db := setupTestDB(t)
    svc := NewRelationshipService(repository.NewFollowRepository(db))
    ctx := context.Background()

    already, err := svc.Follow(ctx, "u1", "u2")
    require.NoError(t, err)
    require.False(t, already)

    already, err = svc.Follow(ctx, "u1", "u2")
    require.NoError(t, err)
    require.True(t, already)

    var cnt int64
    require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
    require.Equal(t, int64(1), cnt)
}

func TestUnfollow_MissingPairIsNoop(t *testing.T) {
    db := setupTestDB(t)
    svc := NewRelationshipService(repository.NewFollowRepository(db))
    ctx := context.Background()

    removed, err := svc.Unfollow(ctx, "u1", "u2")
    require.NoError(t, err)
    require.False(t, removed)

    _, err = svc.Follow(ctx, "u1", "u2")
    require.NoError(t, err)
    removed, err = svc.Unfollow(ctx, "u1", "u2")
    require.NoError(t, err)
    require.True(t, removed)
}

func TestListFollowingAndFans(t *testing.T) {
    db := setupTestDB(t)
    svc := NewRelationshipService(repository.NewFollowRepository(db))
    ctx := context.Background()

    for _, follower := range []string{"u1", "u2", "u3"} {
        _, err := svc.Follow(ctx, follower, "star")
        require.NoError(t, err)
    }
    _, err := svc.Follow(ctx, "star", "u1")
    require.NoError(t, err)

    fans, err := svc.ListFans(ctx, "star", 1, 10)
    require.NoError(t, err)
    require.ElementsMatch(t, []string{"u1", "u2", "u3"}, fans)

    following, err := svc.ListFollowing(ctx, "star", 1, 10)
    require.NoError(t, err)
    require.Equal(t, []string{"u1"}, following)
}
