// Package resilience содержит механизмы обеспечения отказоустойчивости.
package resilience

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"noteboard/internal/board/domain/entities"
	"noteboard/pkg/logger"
)

// CircuitState представляет состояние Circuit Breaker.
type CircuitState int

// Состояния Circuit Breaker.
const (
	// StateClosed - нормальное состояние, запросы проходят.
	StateClosed CircuitState = iota
	// StateOpen - состояние отказа, запросы блокируются.
	StateOpen
	// StateHalfOpen - промежуточное состояние, пробные запросы.
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Константы для логирования.
const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitTrip        = "circuit breaker tripped"
	LogCircuitReset       = "circuit breaker reset"
	LogCircuitAllowProbe  = "circuit breaker allowing probe"
	LogCircuitReject      = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, когда Circuit Breaker находится в открытом состоянии.
// Считается временной сетевой ошибкой.
var ErrCircuitOpen = fmt.Errorf("circuit breaker is open: %w", entities.ErrTransientNetwork)

// CircuitBreakerConfig содержит настройки Circuit Breaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold - количество ошибок подряд перед переключением в открытое состояние.
	ErrorThreshold int
	// Timeout - время в открытом состоянии до первой пробы.
	Timeout time.Duration
	// SuccessThreshold - количество успешных проб для перехода в закрытое состояние.
	SuccessThreshold int
}

// DefaultCircuitBreakerConfig возвращает конфигурацию Circuit Breaker по умолчанию.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker реализует паттерн Circuit Breaker. Запросы не повторяются:
// при открытом состоянии вызов сразу завершается с ErrCircuitOpen.
type CircuitBreaker struct {
	name string
	now  func() time.Time

	mu              sync.Mutex
	state           CircuitState
	config          CircuitBreakerConfig
	failures        int
	successes       int
	lastStateChange time.Time
}

// NewCircuitBreaker создает новый экземпляр Circuit Breaker.
func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		name:            name,
		now:             time.Now,
		state:           StateClosed,
		config:          config,
		lastStateChange: time.Now(),
	}
}

// Execute выполняет функцию с защитой Circuit Breaker.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.AllowRequest(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	cb.RecordResult(ctx, err)
	return err
}

// AllowRequest проверяет возможность выполнения запроса.
func (cb *CircuitBreaker) AllowRequest(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	log := cb.logger(ctx)

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastStateChange) <= cb.config.Timeout {
			log.Debug(ctx, LogCircuitReject)
			return false
		}
		cb.setState(ctx, log, StateHalfOpen)
		log.Info(ctx, LogCircuitAllowProbe)
		return true
	default:
		return false
	}
}

// RecordResult записывает результат выполнения функции. Ошибки входных
// данных, отсутствующие объекты и отмена контекста состояние не меняют.
func (cb *CircuitBreaker) RecordResult(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	log := cb.logger(ctx)

	switch entities.KindOf(err) {
	case entities.KindNone, entities.KindValidation, entities.KindNotFound:
		cb.onSuccess(ctx, log)
	case entities.KindCanceled:
	default:
		cb.onFailure(ctx, log)
	}
}

func (cb *CircuitBreaker) onFailure(ctx context.Context, log *logger.Logger) {
	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.ErrorThreshold {
			log.Warn(ctx, LogCircuitTrip, zap.Int("failures", cb.failures))
			cb.setState(ctx, log, StateOpen)
		}
	case StateHalfOpen:
		log.Warn(ctx, LogCircuitTrip, zap.String("reason", "probe failed"))
		cb.setState(ctx, log, StateOpen)
	}
}

func (cb *CircuitBreaker) onSuccess(ctx context.Context, log *logger.Logger) {
	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			log.Info(ctx, LogCircuitReset)
			cb.setState(ctx, log, StateClosed)
		}
	}
}

func (cb *CircuitBreaker) setState(ctx context.Context, log *logger.Logger, state CircuitState) {
	cb.state = state
	cb.lastStateChange = cb.now()
	cb.failures = 0
	cb.successes = 0
	log.Info(ctx, LogCircuitStateChange, zap.Stringer("new_state", state))
}

func (cb *CircuitBreaker) logger(ctx context.Context) *logger.Logger {
	return logger.Log(ctx).With(
		zap.String("circuit_breaker", cb.name),
		zap.Stringer("circuit_state", cb.state),
	)
}

// GetState возвращает текущее состояние Circuit Breaker.
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
