package storage

import (
	"artfolio/internal/providers"
	"artfolio/internal/storage/interfaces"
	"artfolio/internal/structures"
	"context"
	"sync"
	"time"

	"github.com/adhocore/gronx"
)

const persistTimeout = 30 * time.Second

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	persister   *Persister
	gateway     KeyValueGateway
	fileManager *FileManager
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	opsMu       sync.Mutex
}

// Init starts the backup loop on the configured cron expression.
func (s *Scheduler) Init() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx, s.config.Persistence.BackupCron)
	}()
}

func (s *Scheduler) loop(ctx context.Context, cronExpr string) {
	for {
		next, err := gronx.NextTickAfter(cronExpr, time.Now(), false)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Backup schedule %q: %s", cronExpr, err)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		if err := s.Persist(); err == nil {
			s.logger.Infof(providers.TypeApp, "Backup written to %s", s.config.Persistence.BackupPath)
		}
	}
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Restore imports the backup file when the store holds no data yet.
func (s *Scheduler) Restore() error {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	empty := true
	err := s.gateway.Scan(ctx, "", func(_ string, _ []byte) error {
		empty = false
		return ErrStopScan
	})
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	n, err := s.fileManager.LoadFromFile(ctx, s.config.Persistence.BackupPath)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Infof(providers.TypeApp, "Restored %d keys from %s", n, s.config.Persistence.BackupPath)
	}
	return nil
}

// Persist waits for queued writes and then writes the backup file.
func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.persister.Flush(ctx); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while flushing pending writes: %s", err)
		return err
	}
	err := s.fileManager.SaveToFile(ctx, s.config.Persistence.BackupPath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, persister *Persister, gateway KeyValueGateway, fileManager *FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		persister:   persister,
		gateway:     gateway,
		fileManager: fileManager,
	}
}
