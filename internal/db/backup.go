package db

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// BackupService copies the sqlite file to a timestamped backup on a fixed
// interval and prunes backups older than the retention window.
type BackupService struct {
	dbPath    string
	dir       string
	interval  time.Duration
	retention time.Duration
	log       zerolog.Logger
}

func NewBackupService(dbPath, dir string, interval, retention time.Duration, logger *zerolog.Logger) *BackupService {
	return &BackupService{
		dbPath:    dbPath,
		dir:       dir,
		interval:  interval,
		retention: retention,
		log:       logger.With().Str("component", "backup").Logger(),
	}
}

// Start runs the backup loop until ctx is cancelled. The first backup runs
// immediately.
func (s *BackupService) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info().Msg("backups disabled")
		return
	}

	s.log.Info().Dur("interval", s.interval).Str("dir", s.dir).Msg("backup service started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if err := s.Run(); err != nil {
		s.log.Error().Err(err).Msg("initial backup failed")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Run(); err != nil {
				s.log.Error().Err(err).Msg("scheduled backup failed")
			}
			s.cleanup()
		}
	}
}

// Run copies the database file into the backup directory.
func (s *BackupService) Run() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("backup_%s.db", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	source, err := os.Open(s.dbPath)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(path)
	if err != nil {
		return err
	}
	defer destination.Close()

	if _, err = io.Copy(destination, source); err != nil {
		return err
	}

	s.log.Info().Str("path", path).Msg("backup completed")
	return nil
}

func (s *BackupService) cleanup() {
	if s.retention <= 0 {
		return
	}

	files, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read backup directory")
		return
	}

	cutoff := time.Now().Add(-s.retention)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			s.log.Info().Str("file", file.Name()).Msg("deleting old backup")
			_ = os.Remove(filepath.Join(s.dir, file.Name()))
		}
	}
}
