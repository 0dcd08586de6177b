package handler_test

import (
    "bytes"
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/d60-Lab/hopon/internal/api/handler"
    "github.com/d60-Lab/hopon/internal/api/router"
    "github.com/d60-Lab/hopon/internal/cache"
    "github.com/d60-Lab/hopon/internal/model"
    "github.com/d60-Lab/hopon/internal/repository"
    "github.com/d60-Lab/hopon/internal/service"
)

func setupServer(t *testing.T) *gin.Engine {
    t.Helper()
    gin.SetMode(gin.TestMode)
    require.NoError(t, handler.RegisterValidators())

    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
    require.NoError(t, err)
    require.NoError(t, db.AutoMigrate(&model.User{}, &model.Event{}, &model.EventParticipant{}, &model.Follow{}))

    counts := cache.NewCounts(db, nil, time.Minute)
    eventRepo := repository.NewEventRepository(db)
    participantRepo := repository.NewParticipantRepository(db)

    h := handler.New(
        service.NewEventService(eventRepo, participantRepo, counts),
        service.NewMembershipService(db, eventRepo, participantRepo, nil),
        service.NewUserService(repository.NewUserRepository(db), counts),
        service.NewRelationshipService(repository.NewFollowRepository(db)),
    )
    return router.New(h)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
    t.Helper()
    var buf bytes.Buffer
    if body != nil {
        require.NoError(t, json.NewEncoder(&buf).Encode(body))
    }
    req := httptest.NewRequest(method, path, &buf)
    req.Header.Set("Content-Type", "application/json")
    w := httptest.NewRecorder()
    r.ServeHTTP(w, req)

    var out map[string]any
    if len(w.Body.Bytes()) > 0 && w.Body.Bytes()[0] == '{' {
        require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
    }
    return w, out
}

func createEvent(t *testing.T, r *gin.Engine, body map[string]any) string {
    t.Helper()
    w, resp := doJSON(t, r, http.MethodPost, "/events", body)
    require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
    event := resp["event"].(map[string]any)
    return event["id"].(string)
}

func TestHealth(t *testing.T) {
    r := setupServer(t)
    w, resp := doJSON(t, r, http.MethodGet, "/health", nil)
    require.Equal(t, http.StatusOK, w.Code)
    require.Equal(t, "ok", resp["status"])
}

func TestHello(t *testing.T) {
    r := setupServer(t)
    w, resp := doJSON(t, r, http.MethodGet, "/hello?name=hopon", nil)
    require.Equal(t, http.StatusOK, w.Code)
    require.Equal(t, "Hello, hopon!", resp["message"])

    _, resp = doJSON(t, r, http.MethodGet, "/hello", nil)
    require.Equal(t, "Hello, world!", resp["message"])
}

func TestCreateEvent_Validation(t *testing.T) {
    r := setupServer(t)

    w, resp := doJSON(t, r, http.MethodPost, "/events", map[string]any{"name": "e"})
    require.Equal(t, http.StatusBadRequest, w.Code)
    require.Contains(t, resp["error"], "Missing required fields")

    // max_players 必须为正
    w, _ = doJSON(t, r, http.MethodPost, "/events", map[string]any{
        "name": "e", "sport": "soccer", "location": "loc", "max_players": 0,
    })
    require.Equal(t, http.StatusBadRequest, w.Code)

    // 坐标同存同缺
    w, _ = doJSON(t, r, http.MethodPost, "/events", map[string]any{
        "name": "e", "sport": "soccer", "location": "loc", "max_players": 4, "latitude": 30.0,
    })
    require.Equal(t, http.StatusBadRequest, w.Code)

    // skill_level 枚举
    w, _ = doJSON(t, r, http.MethodPost, "/events", map[string]any{
        "name": "e", "sport": "soccer", "location": "loc", "max_players": 4, "skill_level": "pro",
    })
    require.Equal(t, http.StatusBadRequest, w.Code)

    w, _ = doJSON(t, r, http.MethodPost, "/events", map[string]any{
        "name": "e", "sport": "soccer", "location": "loc", "max_players": 4, "skill_level": "beginner",
    })
    require.Equal(t, http.StatusCreated, w.Code)
}

func TestJoinFlow_CapacityAndIdempotence(t *testing.T) {
    r := setupServer(t)
    id := createEvent(t, r, map[string]any{
        "name": "solo", "sport": "tennis", "location": "court", "max_players": 1,
    })
    joinPath := fmt.Sprintf("/events/%s/join", id)

    // 缺 player_name
    w, resp := doJSON(t, r, http.MethodPost, joinPath, map[string]any{"user_id": "u5"})
    require.Equal(t, http.StatusBadRequest, w.Code)
    require.Equal(t, "Player name is required", resp["error"])

    // u5 加入成功
    w, resp = doJSON(t, r, http.MethodPost, joinPath, map[string]any{"player_name": "Five", "user_id": "u5"})
    require.Equal(t, http.StatusCreated, w.Code)
    require.Equal(t, "Successfully joined event", resp["message"])
    event := resp["event"].(map[string]any)
    require.Equal(t, float64(1), event["current_players"])

    // u6 满员被拒
    w, resp = doJSON(t, r, http.MethodPost, joinPath, map[string]any{"player_name": "Six", "user_id": "u6"})
    require.Equal(t, http.StatusConflict, w.Code)
    require.Equal(t, "Event is full", resp["error"])

    // u5 重复加入幂等成功
    w, resp = doJSON(t, r, http.MethodPost, joinPath, map[string]any{"player_name": "Five", "user_id": "u5"})
    require.Equal(t, http.StatusOK, w.Code)
    require.Equal(t, "Already joined", resp["message"])

    // u5 退出
    w, resp = doJSON(t, r, http.MethodPost, fmt.Sprintf("/events/%s/leave", id), map[string]any{"user_id": "u5"})
    require.Equal(t, http.StatusOK, w.Code)
    require.Equal(t, "Left event", resp["message"])

    // 名额释放后 u6 可加入
    w, _ = doJSON(t, r, http.MethodPost, joinPath, map[string]any{"player_name": "Six", "user_id": "u6"})
    require.Equal(t, http.StatusCreated, w.Code)

    // 非参与者退出为 no-op
    w, resp = doJSON(t, r, http.MethodPost, fmt.Sprintf("/events/%s/leave", id), map[string]any{"user_id": "u5"})
    require.Equal(t, http.StatusOK, w.Code)
    require.Equal(t, "Not a participant", resp["message"])

    // 缺 user_id
    w, resp = doJSON(t, r, http.MethodPost, fmt.Sprintf("/events/%s/leave", id), map[string]any{})
    require.Equal(t, http.StatusBadRequest, w.Code)
    require.Equal(t, "user_id is required", resp["error"])
}

func TestJoin_EventNotFound(t *testing.T) {
    r := setupServer(t)
    w, _ := doJSON(t, r, http.MethodPost, "/events/missing/join", map[string]any{"player_name": "p"})
    require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNearbyEvents_ZeroDistanceFirst(t *testing.T) {
    r := setupServer(t)
    atOrigin := createEvent(t, r, map[string]any{
        "name": "origin", "sport": "soccer", "location": "a", "max_players": 4,
        "latitude": 0.0, "longitude": 0.0,
    })
    _ = createEvent(t, r, map[string]any{
        "name": "nowhere", "sport": "soccer", "location": "b", "max_players": 4,
    })

    req := httptest.NewRequest(http.MethodGet, "/events/nearby?lat=0&lng=0", nil)
    w := httptest.NewRecorder()
    r.ServeHTTP(w, req)
    require.Equal(t, http.StatusOK, w.Code)

    var list []map[string]any
    require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
    require.Len(t, list, 2)
    require.Equal(t, atOrigin, list[0]["id"])
    require.Equal(t, float64(0), list[0]["distance_km"])
    require.Nil(t, list[1]["distance_km"])
}

func TestParticipantsEndpoint(t *testing.T) {
    r := setupServer(t)
    id := createEvent(t, r, map[string]any{
        "name": "e", "sport": "soccer", "location": "a", "max_players": 4,
    })
    _, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/events/%s/join", id), map[string]any{"player_name": "p", "user_id": "u1"})

    w, resp := doJSON(t, r, http.MethodGet, fmt.Sprintf("/events/%s/participants", id), nil)
    require.Equal(t, http.StatusOK, w.Code)
    require.Len(t, resp["participants"], 1)

    w, _ = doJSON(t, r, http.MethodGet, "/events/missing/participants", nil)
    require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserEndpoints(t *testing.T) {
    r := setupServer(t)

    w, _ := doJSON(t, r, http.MethodPost, "/users", map[string]any{"username": "kai"})
    require.Equal(t, http.StatusBadRequest, w.Code)

    w, resp := doJSON(t, r, http.MethodPost, "/users", map[string]any{"username": "kai", "email": "kai@example.com"})
    require.Equal(t, http.StatusCreated, w.Code)
    user := resp["user"].(map[string]any)
    userID := user["id"].(string)

    w, resp = doJSON(t, r, http.MethodPost, "/users", map[string]any{"username": "kai", "email": "dup@example.com"})
    require.Equal(t, http.StatusConflict, w.Code)
    require.Equal(t, "Username or email already exists", resp["error"])

    w, resp = doJSON(t, r, http.MethodGet, "/users/"+userID, nil)
    require.Equal(t, http.StatusOK, w.Code)
    require.Equal(t, "kai", resp["username"])

    w, _ = doJSON(t, r, http.MethodGet, "/users/missing", nil)
    require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowEndpoints(t *testing.T) {
    r := setupServer(t)

    w, resp := doJSON(t, r, http.MethodPost, "/users/u2/follow", map[string]any{})
    require.Equal(t, http.StatusBadRequest, w.Code)
    require.Equal(t, "follower_id is required", resp["error"])

    w, resp = doJSON(t, r, http.MethodPost, "/users/u1/follow", map[string]any{"follower_id": "u1"})
    require.Equal(t, http.StatusBadRequest, w.Code)
    require.Equal(t, "cannot follow self", resp["error"])

    w, resp = doJSON(t, r, http.MethodPost, "/users/u2/follow", map[string]any{"follower_id": "u1"})
    require.Equal(t, http.StatusOK, w.Code)
    require.Equal(t, "Followed", resp["message"])

    w, resp = doJSON(t, r, http.MethodPost, "/users/u2/follow", map[string]any{"follower_id": "u1"})
    require.Equal(t, http.StatusOK, w.Code)
    require.Equal(t, "Already following", resp["message"])

    w, resp = doJSON(t, r, http.MethodDelete, "/users/u2/follow?follower_id=u1", nil)
    require.Equal(t, http.StatusOK, w.Code)
    require.Equal(t, "Unfollowed", resp["message"])

    w, resp = doJSON(t, r, http.MethodDelete, "/users/u2/follow?follower_id=u1", nil)
    require.Equal(t, http.StatusOK, w.Code)
    require.Equal(t, "Not following", resp["message"])

    w, resp = doJSON(t, r, http.MethodDelete, "/users/u2/follow", nil)
    require.Equal(t, http.StatusBadRequest, w.Code)
    require.Equal(t, "follower_id is required", resp["error"])
}

func TestMyEvents(t *testing.T) {
    r := setupServer(t)

    w, resp := doJSON(t, r, http.MethodGet, "/me/events", nil)
    require.Equal(t, http.StatusBadRequest, w.Code)
    require.Equal(t, "user_id is required", resp["error"])

    hosted := createEvent(t, r, map[string]any{
        "name": "hosted", "sport": "soccer", "location": "a", "max_players": 4, "host_user_id": "u9",
    })
    joined := createEvent(t, r, map[string]any{
        "name": "joined", "sport": "soccer", "location": "b", "max_players": 4,
    })
    _, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/events/%s/join", joined), map[string]any{"player_name": "p", "user_id": "u9"})

    w, resp = doJSON(t, r, http.MethodGet, "/me/events?user_id=u9", nil)
    require.Equal(t, http.StatusOK, w.Code)
    joinedList := resp["joined"].([]any)
    hostedList := resp["hosted"].([]any)
    require.Len(t, joinedList, 1)
    require.Len(t, hostedList, 1)
    require.Equal(t, joined, joinedList[0].(map[string]any)["id"])
    require.Equal(t, hosted, hostedList[0].(map[string]any)["id"])
}
