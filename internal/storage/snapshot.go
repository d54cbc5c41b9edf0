package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

const snapshotVersion = 1

type snapshotFile struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	Entries   Entries   `json:"entries"`
}

// Snapshotter writes and reads zstd-compressed JSON exports of a Dumper.
type Snapshotter struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewSnapshotter() (*Snapshotter, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Snapshotter{encoder: encoder, decoder: decoder}, nil
}

func (s *Snapshotter) Close() error {
	s.decoder.Close()
	return s.encoder.Close()
}

// Save dumps src into path. The file is written next to path and renamed into
// place, so a crash never leaves a truncated snapshot behind.
func (s *Snapshotter) Save(ctx context.Context, src Dumper, path string) (int, error) {
	entries, err := src.Dump(ctx)
	if err != nil {
		return 0, err
	}

	raw, err := json.Marshal(snapshotFile{
		Version:   snapshotVersion,
		CreatedAt: time.Now().UTC(),
		Entries:   entries,
	})
	if err != nil {
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}
	data := s.encoder.EncodeAll(raw, make([]byte, 0, len(raw)/2))

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return 0, fmt.Errorf("create snapshot: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return 0, fmt.Errorf("write snapshot: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return 0, fmt.Errorf("sync snapshot: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpFile)
		return 0, fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpFile, path); err != nil {
		return 0, fmt.Errorf("rename snapshot: %w", err)
	}
	return countEntries(entries), nil
}

// Load restores the snapshot at path into dst and returns the number of
// entries written.
func (s *Snapshotter) Load(ctx context.Context, dst Dumper, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read snapshot: %w", err)
	}
	raw, err := s.decoder.DecodeAll(data, nil)
	if err != nil {
		return 0, fmt.Errorf("decompress snapshot: %w", err)
	}

	var snapshot snapshotFile
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return 0, fmt.Errorf("decode snapshot: %w", err)
	}
	if snapshot.Version != snapshotVersion {
		return 0, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}

	if err := dst.Restore(ctx, snapshot.Entries); err != nil {
		return 0, err
	}
	return countEntries(snapshot.Entries), nil
}

func countEntries(entries Entries) int {
	n := 0
	for _, keys := range entries {
		n += len(keys)
	}
	return n
}
