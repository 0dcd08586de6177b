package service

import "errors"

// 业务错误；handler 据此映射 HTTP 状态码
var (
    ErrEventNotFound = errors.New("event not found")
    ErrUserNotFound  = errors.New("user not found")
    // ErrEventFull 容量已满
    ErrEventFull = errors.New("event is full")
    // ErrJoinConflict 并发重复加入时由唯一索引兜底
    ErrJoinConflict = errors.New("duplicate join")
    // ErrDuplicateUser username/email 已存在
    ErrDuplicateUser = errors.New("username or email already exists")
    ErrFollowSelf    = errors.New("cannot follow self")
    // ErrCoordinatePair 纬度/经度必须同存同缺
    ErrCoordinatePair = errors.New("latitude and longitude must be provided together")
)
