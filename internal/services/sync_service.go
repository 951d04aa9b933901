package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/metrics"
)

const (
	SyncTriggerManual   = "manual"
	SyncTriggerSchedule = "schedule"

	syncTimeout = 2 * time.Minute
)

type SyncServiceInterface interface {
	Run(ctx context.Context, trigger string) (*dto.SyncResultDTO, error)
	Start(schedule string) error
	Stop()
}

// SyncService периодически перечитывает все коллекции, пока есть сессия.
type SyncService struct {
	domain   repositories.DomainRepositoryInterface
	sessions repositories.SessionRepositoryInterface
	logger   *zap.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

func NewSyncService(domain repositories.DomainRepositoryInterface, sessions repositories.SessionRepositoryInterface, logger *zap.Logger) *SyncService {
	return &SyncService{domain: domain, sessions: sessions, logger: logger}
}

func (s *SyncService) Run(ctx context.Context, trigger string) (*dto.SyncResultDTO, error) {
	metrics.RecordSyncRun(trigger)
	if err := s.domain.InitializeData(ctx); err != nil {
		return nil, fmt.Errorf("синхронизация (%s): %w", trigger, err)
	}
	snap := s.domain.Snapshot()
	return &dto.SyncResultDTO{
		Equipment: len(snap.Equipment),
		Requests:  len(snap.Requests),
		Teams:     len(snap.Teams),
		Stages:    len(snap.Stages),
	}, nil
}

// scheduled - задача cron. Без сессии API ответит 401, поэтому запуск пропускается.
func (s *SyncService) scheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	if _, err := s.sessions.Load(ctx); err != nil {
		if !errors.Is(err, apperrors.ErrSessionMissing) {
			s.logger.Warn("Синхронизация: не удалось прочитать сессию", zap.Error(err))
		}
		return
	}
	result, err := s.Run(ctx, SyncTriggerSchedule)
	if err != nil {
		s.logger.Warn("Синхронизация по расписанию не удалась", zap.Error(err))
		return
	}
	s.logger.Debug("Синхронизация по расписанию",
		zap.Int("equipment", result.Equipment),
		zap.Int("requests", result.Requests),
	)
}

// Start запускает cron. Пустое расписание отключает периодическую синхронизацию.
func (s *SyncService) Start(schedule string) error {
	if schedule == "" {
		s.logger.Info("Периодическая синхронизация отключена")
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, s.scheduled); err != nil {
		return fmt.Errorf("некорректное расписание синхронизации %q: %w", schedule, err)
	}
	c.Start()
	s.cron = c
	s.logger.Info("Периодическая синхронизация запущена", zap.String("schedule", schedule))
	return nil
}

func (s *SyncService) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}
