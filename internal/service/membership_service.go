package service

import (
    "context"
    "errors"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/d60-Lab/hopon/internal/model"
    "github.com/d60-Lab/hopon/internal/repository"
)

// JoinRequest 加入请求；UserID 为空表示游客按名字报名
type JoinRequest struct {
    PlayerName string
    UserID     *string
    Team       string
}

// MembershipService 参与关系服务：加入/退出/名单
type MembershipService interface {
    // Join 返回 (球局视图, 是否幂等重复加入, error)
    Join(ctx context.Context, eventID string, req JoinRequest) (*model.Event, bool, error)
    // Leave 返回是否真的退出了（非参与者为幂等 no-op）
    Leave(ctx context.Context, eventID, userID string) (bool, error)
    Participants(ctx context.Context, eventID string) (*model.Event, []*model.EventParticipant, error)
}

type membershipService struct {
    db              *gorm.DB
    eventRepo       repository.EventRepository
    participantRepo repository.ParticipantRepository
    refresher       *CountRefresher
}

func NewMembershipService(db *gorm.DB, eventRepo repository.EventRepository, participantRepo repository.ParticipantRepository, refresher *CountRefresher) MembershipService {
    return &membershipService{db: db, eventRepo: eventRepo, participantRepo: participantRepo, refresher: refresher}
}

func (s *membershipService) Join(ctx context.Context, eventID string, req JoinRequest) (*model.Event, bool, error) {
    var ev model.Event
    already := false

    err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        // 锁住球局行，同一局的并发 join 在此串行化，容量判定不会被穿透
        if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
            First(&ev, "id = ?", eventID).Error; err != nil {
            if errors.Is(err, gorm.ErrRecordNotFound) {
                return ErrEventNotFound
            }
            return err
        }

        var cnt int64
        if err := tx.Model(&model.EventParticipant{}).
            Where("event_id = ?", eventID).Count(&cnt).Error; err != nil {
            return err
        }

        // 幂等：同一用户重复加入直接成功，不占新名额
        if req.UserID != nil {
            var existing model.EventParticipant
            err := tx.Where("event_id = ? AND user_id = ?", eventID, *req.UserID).
                First(&existing).Error
            if err == nil {
                already = true
                ev.CurrentPlayers = cnt
                return nil
            }
            if !errors.Is(err, gorm.ErrRecordNotFound) {
                return err
            }
        }

        if !CanJoin(cnt, ev.MaxPlayers) {
            return ErrEventFull
        }

        team := req.Team
        if team == "" {
            team = model.DefaultTeam
        }
        p := &model.EventParticipant{
            ID:         uuid.New().String(),
            EventID:    eventID,
            UserID:     req.UserID,
            PlayerName: req.PlayerName,
            Team:       team,
            JoinedAt:   time.Now(),
        }
        if err := tx.Create(p).Error; err != nil {
            // 唯一索引兜底并发下的重复加入
            if errors.Is(err, gorm.ErrDuplicatedKey) {
                return ErrJoinConflict
            }
            return err
        }
        ev.CurrentPlayers = cnt + 1
        return nil
    })
    if err != nil {
        return nil, false, err
    }

    if s.refresher != nil {
        s.refresher.EnqueueEvent(eventID)
        if req.UserID != nil {
            s.refresher.EnqueueUser(*req.UserID)
        }
    }
    return &ev, already, nil
}

func (s *membershipService) Leave(ctx context.Context, eventID, userID string) (bool, error) {
    removed, err := s.participantRepo.DeleteByEventUser(ctx, eventID, userID)
    if err != nil {
        return false, err
    }
    if removed && s.refresher != nil {
        s.refresher.EnqueueEvent(eventID)
        s.refresher.EnqueueUser(userID)
    }
    return removed, nil
}

func (s *membershipService) Participants(ctx context.Context, eventID string) (*model.Event, []*model.EventParticipant, error) {
    ev, err := s.eventRepo.GetByID(ctx, eventID)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, nil, ErrEventNotFound
        }
        return nil, nil, err
    }
    participants, err := s.participantRepo.ListByEvent(ctx, eventID)
    if err != nil {
        return nil, nil, err
    }
    ev.CurrentPlayers = int64(len(participants))
    return ev, participants, nil
}
