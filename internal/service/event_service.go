package service

import (
    "context"
    "errors"
    "sort"
    "time"

    "gorm.io/gorm"

    "github.com/d60-Lab/hopon/internal/cache"
    "github.com/d60-Lab/hopon/internal/model"
    "github.com/d60-Lab/hopon/internal/repository"
)

// GeoPoint 发现查询的参考点
type GeoPoint struct {
    Lat float64
    Lng float64
}

// CreateEventInput 建局入参（boundary 已做必填校验）
type CreateEventInput struct {
    Name       string
    Sport      string
    Location   string
    Notes      *string
    MaxPlayers int
    EventDate  *time.Time
    Latitude   *float64
    Longitude  *float64
    SkillLevel *string
    HostUserID *string
}

// EventWithDistance 附近视图：球局 + 到参考点的距离（无坐标为 null）
type EventWithDistance struct {
    *model.Event
    DistanceKm *float64 `json:"distance_km"`
}

// EventService 球局服务：创建、查询与按距离发现
type EventService interface {
    Create(ctx context.Context, in CreateEventInput) (*model.Event, error)
    Get(ctx context.Context, id string) (*model.Event, error)
    // List 按创建时间倒序
    List(ctx context.Context) ([]*model.Event, error)
    // Nearby 附近发现；ref 为 nil 时全部距离为 null，保持原序
    Nearby(ctx context.Context, ref *GeoPoint) ([]*EventWithDistance, error)
    // MyEvents 返回 (已加入, 主办) 两组球局
    MyEvents(ctx context.Context, userID string) ([]*model.Event, []*model.Event, error)
}

type eventService struct {
    eventRepo       repository.EventRepository
    participantRepo repository.ParticipantRepository
    counts          *cache.Counts
}

func NewEventService(eventRepo repository.EventRepository, participantRepo repository.ParticipantRepository, counts *cache.Counts) EventService {
    return &eventService{eventRepo: eventRepo, participantRepo: participantRepo, counts: counts}
}

func (s *eventService) Create(ctx context.Context, in CreateEventInput) (*model.Event, error) {
    // 坐标同存同缺
    if (in.Latitude == nil) != (in.Longitude == nil) {
        return nil, ErrCoordinatePair
    }
    e := &model.Event{
        Name:       in.Name,
        Sport:      in.Sport,
        Location:   in.Location,
        Notes:      in.Notes,
        MaxPlayers: in.MaxPlayers,
        EventDate:  in.EventDate,
        Latitude:   in.Latitude,
        Longitude:  in.Longitude,
        SkillLevel: in.SkillLevel,
        HostUserID: in.HostUserID,
        CreatedAt:  time.Now(),
    }
    if err := s.eventRepo.Create(ctx, e); err != nil {
        return nil, err
    }
    return e, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*model.Event, error) {
    e, err := s.eventRepo.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrEventNotFound
        }
        return nil, err
    }
    e.CurrentPlayers, err = s.counts.EventCount(ctx, id)
    if err != nil {
        return nil, err
    }
    return e, nil
}

func (s *eventService) List(ctx context.Context) ([]*model.Event, error) {
    events, err := s.eventRepo.ListNewestFirst(ctx)
    if err != nil {
        return nil, err
    }
    if err := s.fillCounts(ctx, events); err != nil {
        return nil, err
    }
    return events, nil
}

func (s *eventService) Nearby(ctx context.Context, ref *GeoPoint) ([]*EventWithDistance, error) {
    events, err := s.eventRepo.ListAll(ctx)
    if err != nil {
        return nil, err
    }
    if err := s.fillCounts(ctx, events); err != nil {
        return nil, err
    }

    out := make([]*EventWithDistance, len(events))
    for i, e := range events {
        item := &EventWithDistance{Event: e}
        if ref != nil && e.HasCoordinates() {
            d := HaversineKm(ref.Lat, ref.Lng, *e.Latitude, *e.Longitude)
            item.DistanceKm = &d
        }
        out[i] = item
    }
    // 距离升序，无距离的排最后；稳定排序保持同距原序
    sort.SliceStable(out, func(i, j int) bool {
        di, dj := out[i].DistanceKm, out[j].DistanceKm
        switch {
        case di == nil:
            return false
        case dj == nil:
            return true
        default:
            return *di < *dj
        }
    })
    return out, nil
}

func (s *eventService) MyEvents(ctx context.Context, userID string) ([]*model.Event, []*model.Event, error) {
    memberships, err := s.participantRepo.ListByUser(ctx, userID)
    if err != nil {
        return nil, nil, err
    }
    seen := make(map[string]struct{}, len(memberships))
    ids := make([]string, 0, len(memberships))
    for _, m := range memberships {
        if _, ok := seen[m.EventID]; ok {
            continue
        }
        seen[m.EventID] = struct{}{}
        ids = append(ids, m.EventID)
    }
    joined, err := s.eventRepo.ListByIDs(ctx, ids)
    if err != nil {
        return nil, nil, err
    }
    hosted, err := s.eventRepo.ListByHost(ctx, userID)
    if err != nil {
        return nil, nil, err
    }
    if err := s.fillCounts(ctx, joined); err != nil {
        return nil, nil, err
    }
    if err := s.fillCounts(ctx, hosted); err != nil {
        return nil, nil, err
    }
    return joined, hosted, nil
}

func (s *eventService) fillCounts(ctx context.Context, events []*model.Event) error {
    if len(events) == 0 {
        return nil
    }
    ids := make([]string, len(events))
    for i, e := range events {
        ids[i] = e.ID
    }
    counts, err := s.counts.EventCounts(ctx, ids)
    if err != nil {
        return err
    }
    for _, e := range events {
        e.CurrentPlayers = counts[e.ID]
    }
    return nil
}
