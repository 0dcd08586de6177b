package service

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/require"
    "gorm.io/gorm"

    "github.com/d60-Lab/hopon/internal/cache"
    "github.com/d60-Lab/hopon/internal/repository"
)

func newUserService(db *gorm.DB) UserService {
    return NewUserService(repository.NewUserRepository(db), cache.NewCounts(db, nil, time.Minute))
}

func TestCreateUser_DuplicateRejected(t *testing.T) {
    db := setupTestDB(t)
    svc := newUserService(db)
    ctx := context.Background()

    _, err := svc.Create(ctx, CreateUserInput{Username: "kai", Email: "kai@example.com"})
    require.NoError(t, err)

    _, err = svc.Create(ctx, CreateUserInput{Username: "kai", Email: "other@example.com"})
    require.ErrorIs(t, err, ErrDuplicateUser)

    _, err = svc.Create(ctx, CreateUserInput{Username: "other", Email: "kai@example.com"})
    require.ErrorIs(t, err, ErrDuplicateUser)
}

func TestGetUser(t *testing.T) {
    db := setupTestDB(t)
    svc := newUserService(db)
    ctx := context.Background()

    sports := "soccer, badminton"
    created, err := svc.Create(ctx, CreateUserInput{Username: "kai", Email: "kai@example.com", Sports: &sports})
    require.NoError(t, err)

    got, err := svc.Get(ctx, created.ID)
    require.NoError(t, err)
    require.Equal(t, "kai", got.Username)
    require.Equal(t, []string{"soccer", "badminton"}, got.Sports)

    _, err = svc.Get(ctx, "missing")
    require.ErrorIs(t, err, ErrUserNotFound)
}

func TestNearbyUsers_JoinCounts(t *testing.T) {
    db := setupTestDB(t)
    userSvc := newUserService(db)
    eventSvc := newEventService(db)
    membership := newMembership(db)
    ctx := context.Background()

    u, err := userSvc.Create(ctx, CreateUserInput{Username: "kai", Email: "kai@example.com"})
    require.NoError(t, err)
    _, err = userSvc.Create(ctx, CreateUserInput{Username: "idle", Email: "idle@example.com"})
    require.NoError(t, err)

    ev, err := eventSvc.Create(ctx, CreateEventInput{Name: "e", Sport: "soccer", Location: "a", MaxPlayers: 5})
    require.NoError(t, err)
    _, _, err = membership.Join(ctx, ev.ID, JoinRequest{PlayerName: "kai", UserID: &u.ID})
    require.NoError(t, err)

    users, err := userSvc.Nearby(ctx)
    require.NoError(t, err)
    require.Len(t, users, 2)
    byName := map[string]int64{}
    for _, item := range users {
        byName[item.Username] = item.EventsCount
    }
    require.Equal(t, int64(1), byName["kai"])
    require.Equal(t, int64(0), byName["idle"])
}
