package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"noteboard/internal/board/ports/services"
	"noteboard/pkg/logger"
)

// Константы для логирования.
const (
	LogSessionCreated = "session: board created"
	LogSessionEvicted = "session: idle boards evicted"
	LogSessionDropped = "session: limit reached, least recent board dropped"
	LogSweeperStarted = "session: sweeper started"
	LogSweeperStopped = "session: sweeper stopped"
)

var _ services.BoardRegistry = (*Sessions)(nil)

type sessionEntry struct {
	board    *NoteBoard
	lastSeen time.Time
}

// SessionsOption настраивает Sessions.
type SessionsOption func(*Sessions)

// WithMaxSessions ограничивает число досок. При превышении вытесняется доска,
// к которой дольше всего не обращались. Ноль снимает ограничение.
func WithMaxSessions(limit int) SessionsOption {
	return func(s *Sessions) {
		s.maxSessions = limit
	}
}

// Sessions хранит доски по ключу сессии в памяти процесса.
type Sessions struct {
	newBoard    func() *NoteBoard
	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time

	mu     sync.Mutex
	boards map[string]*sessionEntry
}

// NewSessions создает реестр. Доски, к которым не обращались дольше idleTTL,
// удаляются при очередной чистке; нулевой idleTTL отключает удаление.
func NewSessions(newBoard func() *NoteBoard, idleTTL time.Duration, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		newBoard: newBoard,
		idleTTL:  idleTTL,
		now:      time.Now,
		boards:   make(map[string]*sessionEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Board возвращает доску сессии. Новая доска не инициализирована,
// вызывающий отвечает за Initialize.
func (s *Sessions) Board(sessionID string) services.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if entry, ok := s.boards[sessionID]; ok {
		entry.lastSeen = now
		return entry.board
	}

	if s.maxSessions > 0 && len(s.boards) >= s.maxSessions {
		s.dropLeastRecent()
	}

	entry := &sessionEntry{board: s.newBoard(), lastSeen: now}
	s.boards[sessionID] = entry

	logger.Log(context.Background()).Debug(context.Background(), LogSessionCreated,
		zap.Int("sessions", len(s.boards)))

	return entry.board
}

// dropLeastRecent удаляет доску с самым старым обращением. Вызывается под s.mu.
func (s *Sessions) dropLeastRecent() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, entry := range s.boards {
		if oldestID == "" || entry.lastSeen.Before(oldest) {
			oldestID, oldest = id, entry.lastSeen
		}
	}
	delete(s.boards, oldestID)

	logger.Log(context.Background()).Debug(context.Background(), LogSessionDropped,
		zap.Int("limit", s.maxSessions))
}

// Len возвращает число активных сессий.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.boards)
}

// Sweep удаляет доски, простаивающие дольше idleTTL, и возвращает их число.
func (s *Sessions) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-s.idleTTL)
	evicted := 0
	for id, entry := range s.boards {
		if entry.lastSeen.Before(deadline) {
			delete(s.boards, id)
			evicted++
		}
	}
	return evicted
}

// Run периодически вызывает Sweep до отмены контекста.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	log := logger.Log(ctx)
	if interval <= 0 || s.idleTTL <= 0 {
		return
	}

	log.Info(ctx, LogSweeperStarted, zap.Duration("interval", interval), zap.Duration("idle_ttl", s.idleTTL))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info(ctx, LogSweeperStopped)
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Info(ctx, LogSessionEvicted, zap.Int("evicted", n), zap.Int("sessions", s.Len()))
			}
		}
	}
}
