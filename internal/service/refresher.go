package service

import (
    "context"
    "time"

    "go.uber.org/zap"

    "github.com/d60-Lab/hopon/internal/cache"
    "github.com/d60-Lab/hopon/pkg/logger"
)

type refreshKind int

const (
    refreshEvent refreshKind = iota + 1
    refreshUser
)

type refreshJob struct {
    kind refreshKind
    id   string
}

// CountRefresher 简单的本地异步计数刷新器：join/leave 后把
// 球局/用户计数重算进缓存，读路径不必等待
type CountRefresher struct {
    counts *cache.Counts
    ch     chan refreshJob
}

func NewCountRefresher(counts *cache.Counts, queueSize int) *CountRefresher {
    if queueSize <= 0 {
        queueSize = 10000
    }
    return &CountRefresher{counts: counts, ch: make(chan refreshJob, queueSize)}
}

// Start 启动 workers 个协程消费队列；返回停止函数
func (r *CountRefresher) Start(workers int) func(context.Context) error {
    if workers <= 0 {
        workers = 4
    }
    stopCh := make(chan struct{})
    for i := 0; i < workers; i++ {
        go func() {
            for {
                select {
                case job := <-r.ch:
                    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
                    switch job.kind {
                    case refreshEvent:
                        _, _ = r.counts.RefreshEvent(ctx, job.id)
                    case refreshUser:
                        _, _ = r.counts.RefreshUser(ctx, job.id)
                    }
                    cancel()
                case <-stopCh:
                    return
                }
            }
        }()
    }
    return func(ctx context.Context) error {
        close(stopCh)
        // 等待队列自然排空一小段时间
        timeout := time.After(2 * time.Second)
        for {
            select {
            case <-timeout:
                return nil
            default:
                if len(r.ch) == 0 {
                    return nil
                }
                time.Sleep(50 * time.Millisecond)
            }
        }
    }
}

func (r *CountRefresher) EnqueueEvent(eventID string) {
    select {
    case r.ch <- refreshJob{kind: refreshEvent, id: eventID}:
    default:
        logger.Warn("refresher queue full, drop event", zap.String("event", eventID))
    }
}

func (r *CountRefresher) EnqueueUser(userID string) {
    select {
    case r.ch <- refreshJob{kind: refreshUser, id: userID}:
    default:
        logger.Warn("refresher queue full, drop user", zap.String("user", userID))
    }
}

// QueueLen 返回当前队列长度（采样值）。
func (r *CountRefresher) QueueLen() int { return len(r.ch) }
