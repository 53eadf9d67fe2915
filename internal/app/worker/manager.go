package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
)

// ErrShutdownTimeout 等待后台任务退出超时
var ErrShutdownTimeout = errors.New("worker shutdown timed out")

// Runner 后台任务
// Start 阻塞运行直到 ctx 被取消，正常停止返回 nil
type Runner interface {
	Name() string
	Start(ctx context.Context) error
}

// Manager 后台任务管理器
// 职责：
// 1. 在独立 goroutine 中启动所有 Runner
// 2. Shutdown 时发送停止信号，并在超时时间内等待 Runner 退出
type Manager struct {
	runners []Runner
	logger  logger.Logger

	cancel  context.CancelFunc
	started *atomic.Bool
	closing *atomic.Bool
	wg      sync.WaitGroup
	mu      sync.Mutex
	errs    []error
}

// NewManager 创建 Manager
func NewManager(logger logger.Logger, runners ...Runner) *Manager {
	return &Manager{
		runners: runners,
		logger:  logger,
		started: atomic.NewBool(false),
		closing: atomic.NewBool(false),
	}
}

// Start 启动所有 Runner，不阻塞
// ctx 被取消同样会停止所有 Runner
func (m *Manager) Start(ctx context.Context) error {
	if !m.started.CAS(false, true) {
		return fmt.Errorf("worker manager already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	for _, runner := range m.runners {
		r := runner
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.run(runCtx, r)
		}()
		m.logger.Info("[Manager] Runner started", "runner", r.Name())
	}

	m.logger.Info("[Manager] Start success", "count", len(m.runners))
	return nil
}

func (m *Manager) run(ctx context.Context, r Runner) {
	defer func() {
		if p := recover(); p != nil {
			m.record(fmt.Errorf("runner %s panicked: %v", r.Name(), p))
			m.logger.Error("[Manager] Runner panicked", "runner", r.Name(), "panic", p)
		}
	}()

	if err := r.Start(ctx); err != nil {
		m.record(fmt.Errorf("runner %s: %w", r.Name(), err))
		m.logger.Error("[Manager] Runner exited with error", "runner", r.Name(), "error", err)
		return
	}
	m.logger.Info("[Manager] Runner exited", "runner", r.Name())
}

func (m *Manager) record(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
}

// Shutdown 优雅退出，可重复调用
// 超时返回 ErrShutdownTimeout，Runner 异常退出时返回合并后的错误
func (m *Manager) Shutdown(timeout time.Duration) error {
	// 原子操作，保证只关闭一次
	if !m.closing.CAS(false, true) {
		return nil
	}
	m.logger.Info("[Manager] Began to close", "timeout", timeout.String())

	if m.cancel != nil {
		m.cancel()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case <-done:
	case <-timer:
		m.logger.Warn("[Manager] Runners did not exit before timeout", "timeout", timeout.String())
		return ErrShutdownTimeout
	}

	m.logger.Info("[Manager] Shutdown complete")
	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Join(m.errs...)
}
