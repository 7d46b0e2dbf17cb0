package service

import (
	"context"
	"fmt"
	"sync"

	"skill_matrix_backend/internal/config"
	"skill_matrix_backend/internal/util"
	"skill_matrix_backend/pkg/logger"
	"skill_matrix_backend/pkg/monitoring"
	"skill_matrix_backend/pkg/retry"

	"go.uber.org/zap"
)

// Runtime 保存可热更新的运行参数
type Runtime struct {
	mu    sync.RWMutex
	retry retry.Policy
	quiz  config.QuizConfig
}

func NewRuntime(cfg *config.Config) *Runtime {
	r := &Runtime{}
	r.Apply(cfg)
	return r
}

// Apply 配置重载回调
func (r *Runtime) Apply(cfg *config.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retry = retry.FromConfig(cfg.Retry)
	r.quiz = cfg.Quiz
	if r.quiz.DefaultQuestionCount <= 0 {
		r.quiz.DefaultQuestionCount = 10
	}
	if r.quiz.MaxQuestionCount < r.quiz.DefaultQuestionCount {
		r.quiz.MaxQuestionCount = r.quiz.DefaultQuestionCount
	}
}

func (r *Runtime) Retry() retry.Policy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.retry
}

func (r *Runtime) Quiz() config.QuizConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.quiz
}

// do 对存储操作做有限次重试，重试耗尽的瞬时错误转为 ErrUnavailable
func (r *Runtime) do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	calls := 0
	err := retry.Do(ctx, r.Retry(), func(ctx context.Context) error {
		if calls > 0 {
			monitoring.StoreRetries.Inc()
			logger.Log.Warn("Retrying store operation", zap.String("op", op), zap.Int("attempt", calls+1))
		}
		calls++
		return fn(ctx)
	})
	if err != nil && retry.IsTransient(err) {
		return fmt.Errorf("%w: %s: %v", util.ErrUnavailable, op, err)
	}
	return err
}
