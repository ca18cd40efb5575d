package resilience

import (
	"context"

	"go.uber.org/zap"

	"noteboard/internal/board/domain/entities"
	"noteboard/internal/board/ports/stores"
	"noteboard/pkg/logger"
)

// ServiceResilience защищает вызовы одного внешнего сервиса.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
}

// NewServiceResilience создает новую обертку отказоустойчивости для сервиса.
func NewServiceResilience(serviceName string, cfg CircuitBreakerConfig) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cfg),
	}
}

// State возвращает состояние Circuit Breaker сервиса.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.GetState()
}

// ExecuteWithResilience выполняет операцию под Circuit Breaker.
func (r *ServiceResilience) ExecuteWithResilience(ctx context.Context, operationName string, operation func() error) error {
	err := r.circuitBreaker.Execute(ctx, operation)
	if err != nil {
		logger.Log(ctx).Debug(ctx, "guarded operation failed",
			zap.String("service", r.serviceName),
			zap.String("operation", operationName),
			zap.Error(err))
	}
	return err
}

// ExecuteWithResult выполняет операцию с результатом под Circuit Breaker.
func ExecuteWithResult[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	var result T

	err := r.ExecuteWithResilience(ctx, operationName, func() error {
		var err error
		result, err = operation()
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

// GuardedRecordStore пропускает вызовы Record Store через Circuit Breaker.
type GuardedRecordStore struct {
	next stores.RecordStore
	r    *ServiceResilience
}

// NewGuardedRecordStore оборачивает next.
func NewGuardedRecordStore(next stores.RecordStore, r *ServiceResilience) *GuardedRecordStore {
	return &GuardedRecordStore{next: next, r: r}
}

// List реализует stores.RecordStore.
func (s *GuardedRecordStore) List(ctx context.Context) ([]entities.Note, error) {
	return ExecuteWithResult(ctx, s.r, "List", func() ([]entities.Note, error) {
		return s.next.List(ctx)
	})
}

// Create реализует stores.RecordStore.
func (s *GuardedRecordStore) Create(ctx context.Context, input entities.NoteInput) (entities.Note, error) {
	return ExecuteWithResult(ctx, s.r, "Create", func() (entities.Note, error) {
		return s.next.Create(ctx, input)
	})
}

// Delete реализует stores.RecordStore.
func (s *GuardedRecordStore) Delete(ctx context.Context, id string) (entities.Note, error) {
	return ExecuteWithResult(ctx, s.r, "Delete", func() (entities.Note, error) {
		return s.next.Delete(ctx, id)
	})
}

// GuardedBlobStore пропускает вызовы Blob Store через Circuit Breaker.
type GuardedBlobStore struct {
	next stores.BlobStore
	r    *ServiceResilience
}

// NewGuardedBlobStore оборачивает next.
func NewGuardedBlobStore(next stores.BlobStore, r *ServiceResilience) *GuardedBlobStore {
	return &GuardedBlobStore{next: next, r: r}
}

// Put реализует stores.BlobStore.
func (s *GuardedBlobStore) Put(ctx context.Context, key string, file entities.ImageFile) error {
	return s.r.ExecuteWithResilience(ctx, "Put", func() error {
		return s.next.Put(ctx, key, file)
	})
}

// Get реализует stores.BlobStore.
func (s *GuardedBlobStore) Get(ctx context.Context, key string) (string, error) {
	return ExecuteWithResult(ctx, s.r, "Get", func() (string, error) {
		return s.next.Get(ctx, key)
	})
}

var (
	_ stores.RecordStore = (*GuardedRecordStore)(nil)
	_ stores.BlobStore   = (*GuardedBlobStore)(nil)
)
