package service

import (
	"career_assess_backend/pkg/logger"
	"career_assess_backend/pkg/monitoring"
	"context"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RecordFunc 一个尽力而为的持久化任务
type RecordFunc func(ctx context.Context) error

type recordTask struct {
	name string
	run  RecordFunc
}

// AsyncRecorder 每个 worker 一个有界队列，同一 key 的任务总落在同一队列上按提交顺序执行；
// 请求路径从不等待持久化结果
type AsyncRecorder struct {
	shards  []chan recordTask
	timeout time.Duration
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewAsyncRecorder(workers, queueSize int, timeout time.Duration) *AsyncRecorder {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}

	// 总容量按 worker 均分
	perShard := (queueSize + workers - 1) / workers

	r := &AsyncRecorder{
		shards:  make([]chan recordTask, workers),
		timeout: timeout,
	}
	for i := range r.shards {
		r.shards[i] = make(chan recordTask, perShard)
		r.wg.Add(1)
		go r.worker(r.shards[i])
	}
	return r
}

func (r *AsyncRecorder) shard(key string) chan recordTask {
	h := fnv.New32a()
	h.Write([]byte(key))
	return r.shards[h.Sum32()%uint32(len(r.shards))]
}

// Submit 按 key（会话ID）选择队列入队；队列已满或已关闭时丢弃并返回 false
func (r *AsyncRecorder) Submit(key, name string, fn RecordFunc) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		logger.Log.Warn("Recorder closed, dropping task", zap.String("task", name))
		monitoring.PersistenceTasks.WithLabelValues(name, "dropped").Inc()
		return false
	}

	select {
	case r.shard(key) <- recordTask{name: name, run: fn}:
		return true
	default:
		logger.Log.Warn("Persistence queue full, dropping task", zap.String("task", name))
		monitoring.PersistenceTasks.WithLabelValues(name, "dropped").Inc()
		return false
	}
}

func (r *AsyncRecorder) worker(tasks <-chan recordTask) {
	defer r.wg.Done()
	for task := range tasks {
		r.execute(task)
	}
}

func (r *AsyncRecorder) execute(task recordTask) {
	defer func() {
		if p := recover(); p != nil {
			logger.Log.Error("Persistence task panicked", zap.String("task", task.name), zap.Any("panic", p))
			monitoring.PersistenceTasks.WithLabelValues(task.name, "failed").Inc()
		}
	}()

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := task.run(ctx); err != nil {
		logger.Log.Error("Persistence task failed", zap.String("task", task.name), zap.Error(err))
		monitoring.PersistenceTasks.WithLabelValues(task.name, "failed").Inc()
		return
	}
	monitoring.PersistenceTasks.WithLabelValues(task.name, "succeeded").Inc()
}

// Close 停止接收新任务并等待队列排空，ctx 到期则放弃等待
func (r *AsyncRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	for _, ch := range r.shards {
		close(ch)
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
