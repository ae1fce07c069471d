package storage

import (
	"artfolio/internal/providers"
	"artfolio/internal/storage/interfaces"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
)

const backupVersion = 1

// Backup is the on-disk envelope written by SaveToFile.
type Backup struct {
	Version   int                        `json:"version"`
	CreatedAt time.Time                  `json:"created_at"`
	Entries   map[string]json.RawMessage `json:"entries"`
}

type FileManager struct {
	gateway    KeyValueGateway
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, gateway KeyValueGateway, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		gateway:    gateway,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(ctx context.Context, fileName string) error {
	backup := Backup{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC(),
		Entries:   make(map[string]json.RawMessage),
	}
	err := f.gateway.Scan(ctx, "", func(key string, value []byte) error {
		if !json.Valid(value) {
			f.logger.Warnf(providers.TypeStore, "Skipping non-JSON value under %s", key)
			return nil
		}
		backup.Entries[key] = value
		return nil
	})
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(backup)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		return err
	}
	f.logger.Infof(providers.TypeStore, "Backup written to %s: %d keys, %s", fileName, len(backup.Entries), humanize.Bytes(uint64(len(data))))
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile writes every entry of the backup back into the gateway in a
// single atomic batch. A missing file is not an error.
func (f *FileManager) LoadFromFile(ctx context.Context, fileName string) (int, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return 0, err
	}

	var backup Backup
	if err := json.Unmarshal(decompressedData, &backup); err != nil {
		return 0, err
	}
	if backup.Version != backupVersion {
		return 0, fmt.Errorf("unsupported backup version %d", backup.Version)
	}

	muts := make([]Mutation, 0, len(backup.Entries))
	for k, v := range backup.Entries {
		muts = append(muts, Put(k, []byte(v)))
	}
	if len(muts) == 0 {
		return 0, nil
	}
	if err := f.gateway.Apply(ctx, muts); err != nil {
		return 0, err
	}
	return len(muts), nil
}
