package storage

import (
	"artfolio/internal/structures"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schedulerConfig(backupPath string) *structures.Config {
	return &structures.Config{
		Storage: structures.StorageConfig{Driver: "memory", QueueSize: 16},
		Persistence: structures.Persistence{
			BackupPath: backupPath,
			BackupCron: "* * * * *",
		},
	}
}

func newTestScheduler(t *testing.T, conf *structures.Config, gw KeyValueGateway) (*Scheduler, *Persister) {
	logger := &storageTestLogger{}
	p, cleanup := NewPersister(conf, gw, logger, &storageTestMetrics{})
	t.Cleanup(cleanup)
	fm := NewFileManager(identityCompressor{}, gw, logger)
	return NewScheduler(conf, logger, p, gw, fm).(*Scheduler), p
}

func TestScheduler_PersistFlushesThenWritesBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.zst")
	conf := schedulerConfig(path)
	gw := NewMemoryGateway()
	s, p := newTestScheduler(t, conf, gw)

	p.Schedule(Put("messages", []byte(`[]`)))
	require.NoError(t, s.Persist())

	restored := NewMemoryGateway()
	n, err := NewFileManager(identityCompressor{}, restored, &storageTestLogger{}).LoadFromFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestScheduler_Restore_EmptyStoreImportsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.zst")
	conf := schedulerConfig(path)

	source := seededGateway(t)
	require.NoError(t, NewFileManager(identityCompressor{}, source, &storageTestLogger{}).SaveToFile(context.Background(), path))

	gw := NewMemoryGateway()
	s, _ := newTestScheduler(t, conf, gw)
	require.NoError(t, s.Restore())

	_, ok, err := gw.Get(context.Background(), "messages")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestScheduler_Restore_NonEmptyStoreIsLeftAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.zst")
	conf := schedulerConfig(path)
	ctx := context.Background()

	require.NoError(t, NewFileManager(identityCompressor{}, seededGateway(t), &storageTestLogger{}).SaveToFile(ctx, path))

	gw := NewMemoryGateway()
	require.NoError(t, gw.Set(ctx, "artworks", []byte(`[]`)))
	s, _ := newTestScheduler(t, conf, gw)
	require.NoError(t, s.Restore())

	_, ok, err := gw.Get(ctx, "messages")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScheduler_Restore_NoBackupFile(t *testing.T) {
	conf := schedulerConfig(filepath.Join(t.TempDir(), "missing.zst"))
	s, _ := newTestScheduler(t, conf, NewMemoryGateway())
	assert.NoError(t, s.Restore())
}

func TestScheduler_InitStop(t *testing.T) {
	conf := schedulerConfig(filepath.Join(t.TempDir(), "backup.zst"))
	s, _ := newTestScheduler(t, conf, NewMemoryGateway())

	s.Init()
	s.Stop()
	s.Stop()
}

func TestScheduler_InvalidCronEndsLoop(t *testing.T) {
	conf := schedulerConfig(filepath.Join(t.TempDir(), "backup.zst"))
	conf.Persistence.BackupCron = "not a cron"
	s, _ := newTestScheduler(t, conf, NewMemoryGateway())

	s.Init()
	s.Stop()
	assert.GreaterOrEqual(t, s.logger.(*storageTestLogger).errorCount(), 1)
}
