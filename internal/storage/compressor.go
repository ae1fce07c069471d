package storage

import (
	"artfolio/internal/storage/interfaces"
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// maxBackupSize caps the decoded size of a backup file.
const maxBackupSize = 512 << 20

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ErrNotZstd is returned when a backup does not start with a zstd frame.
var ErrNotZstd = errors.New("backup is not zstd compressed")

// BackupCompressor compresses key-value backups. Backups are written a few
// times an hour, so it favours ratio over speed.
type BackupCompressor struct {
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	closeOnce sync.Once
}

func (c *BackupCompressor) Compress(snapshot []byte) ([]byte, error) {
	return c.encoder.EncodeAll(snapshot, nil), nil
}

func (c *BackupCompressor) Decompress(backup []byte) ([]byte, error) {
	if !bytes.HasPrefix(backup, zstdMagic) {
		return nil, ErrNotZstd
	}
	snapshot, err := c.decoder.DecodeAll(backup, nil)
	if err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	return snapshot, nil
}

func (c *BackupCompressor) Close() {
	c.closeOnce.Do(func() {
		_ = c.encoder.Close()
		c.decoder.Close()
	})
}

func NewBackupCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderCRC(true),
	)
	if err != nil {
		return nil, fmt.Errorf("create backup encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxBackupSize),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("create backup decoder: %w", err)
	}
	return &BackupCompressor{encoder: encoder, decoder: decoder}, nil
}
