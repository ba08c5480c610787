package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// sidecarSuffixes are SQLite files that travel with the database.
var sidecarSuffixes = []string{"-journal", "-wal", "-shm"}

// ArchiveDatabase moves the database at dbPath into an archive directory
// next to it and returns the archived path. The next run starts with an
// empty cache.
func ArchiveDatabase(dbPath string) (string, error) {
	info, err := os.Stat(dbPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", dbPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat database: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("database path is a directory: %s", dbPath)
	}

	archiveDir := filepath.Join(filepath.Dir(dbPath), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	ext := filepath.Ext(dbPath)
	base := strings.TrimSuffix(filepath.Base(dbPath), ext)

	now := time.Now()
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", base, now.Format("20060102-150405"), ext))

	// Add microseconds when two archives land in the same second
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", base, now.Format("20060102-150405.000000"), ext))
	}

	if err := os.Rename(dbPath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive database: %w", err)
	}

	for _, suffix := range sidecarSuffixes {
		if _, err := os.Stat(dbPath + suffix); err == nil {
			if err := os.Rename(dbPath+suffix, archivePath+suffix); err != nil {
				return archivePath, fmt.Errorf("failed to archive %s file: %w", suffix, err)
			}
		}
	}

	return archivePath, nil
}
