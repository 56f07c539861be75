package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SchemaVersion is the current seen-log schema version.
const SchemaVersion = 1

// ErrStoreClosed is returned when operations are attempted on a closed log.
var ErrStoreClosed = errors.New("seen log is closed")

// schemaHeader is the first line of the JSONL file.
type schemaHeader struct {
	TourtipSchemaVersion int   `json:"tourtip_schema_version"`
	CreatedAt            int64 `json:"created_at"`
}

// SeenLog is the file-backed seen set: an append-only JSONL file with one
// record per dismissal. It is the reference persistence collaborator for
// the tour manager; hosts with their own storage can skip it entirely.
type SeenLog struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	closed bool
}

// Open opens the seen log at path, creating parent directories and the
// file (with its schema header) when missing.
func Open(path string) (*SeenLog, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	l := &SeenLog{
		path: path,
		file: file,
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.Size() == 0 {
		if err := l.writeHeader(); err != nil {
			file.Close()
			return nil, err
		}
	}

	return l, nil
}

// writeHeader writes the schema version header to the file.
func (l *SeenLog) writeHeader() error {
	header := schemaHeader{
		TourtipSchemaVersion: SchemaVersion,
		CreatedAt:            time.Now().Unix(),
	}

	data, err := json.Marshal(header)
	if err != nil {
		return err
	}

	_, err = l.file.Write(append(data, '\n'))
	return err
}

// Path returns the file path backing the log.
func (l *SeenLog) Path() string {
	return l.path
}

// Load reads all records from the log. Malformed lines are skipped.
func (l *SeenLog) Load() ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked()
}

func (l *SeenLog) loadLocked() ([]Record, error) {
	if l.closed || l.file == nil {
		return nil, ErrStoreClosed
	}

	if _, err := l.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", l.path, err)
	}

	var records []Record
	scanner := bufio.NewScanner(l.file)

	const maxLineSize = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		// First line is the header
		if lineNum == 1 {
			var header schemaHeader
			if err := json.Unmarshal(line, &header); err != nil || header.TourtipSchemaVersion == 0 {
				// Not a valid header; try parsing as a record
				var r Record
				if err := json.Unmarshal(line, &r); err == nil && r.PopupID != "" {
					records = append(records, r)
				}
				continue
			}

			if header.TourtipSchemaVersion > SchemaVersion {
				return nil, fmt.Errorf("unsupported schema version %d (max: %d)",
					header.TourtipSchemaVersion, SchemaVersion)
			}
			continue
		}

		var r Record
		if err := json.Unmarshal(line, &r); err != nil {
			// Skip malformed lines
			continue
		}

		if r.PopupID != "" {
			records = append(records, r)
		}
	}

	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("error reading file: %w", err)
	}

	// Seek back to end for appending
	if _, err := l.file.Seek(0, io.SeekEnd); err != nil {
		return records, err
	}

	return records, nil
}

// IDs returns the distinct seen popup ids in first-seen order.
func (l *SeenLog) IDs() ([]string, error) {
	records, err := l.Load()
	if err != nil {
		return nil, err
	}
	return RecordIDs(records), nil
}

// Append writes a record to the end of the log and flushes it.
func (l *SeenLog) Append(r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.file == nil {
		return ErrStoreClosed
	}

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	if _, err := l.file.Write(append(data, '\n')); err != nil {
		return err
	}

	return l.file.Sync()
}

// Reset removes records for the given page, or every record when page is
// empty, and reports how many were removed. The file is rewritten through
// a backup so a crash mid-rewrite cannot lose the prior log.
func (l *SeenLog) Reset(page string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.loadLocked()
	if err != nil {
		return 0, err
	}

	var kept []Record
	for _, r := range records {
		if page == "" || r.Page == page {
			continue
		}
		kept = append(kept, r)
	}
	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := l.rewriteLocked(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// rewriteLocked replaces the log file with the given records.
func (l *SeenLog) rewriteLocked(records []Record) error {
	if l.file != nil {
		if err := l.file.Close(); err != nil {
			return err
		}
		l.file = nil
	}

	backupPath := l.path + ".bak"
	if err := os.Rename(l.path, backupPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	file, err := os.OpenFile(l.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		// Try to restore backup
		os.Rename(backupPath, l.path)
		return fmt.Errorf("failed to create new file: %w", err)
	}
	l.file = file

	if err := l.writeHeader(); err != nil {
		return err
	}

	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		if _, err := l.file.Write(append(data, '\n')); err != nil {
			return err
		}
	}

	if err := l.file.Sync(); err != nil {
		return err
	}

	os.Remove(backupPath)
	return nil
}

// Close releases the file handle. Close is idempotent.
func (l *SeenLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// RecoverFromCorruption salvages the valid records from a damaged log
// file: the original is kept under a timestamped name and a fresh log is
// written with whatever parsed.
func RecoverFromCorruption(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}

	var valid []Record
	scanner := bufio.NewScanner(file)
	const maxLineSize = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		// Skip header lines
		var header schemaHeader
		if json.Unmarshal(line, &header) == nil && header.TourtipSchemaVersion > 0 {
			continue
		}

		var r Record
		if err := json.Unmarshal(line, &r); err == nil && r.PopupID != "" {
			valid = append(valid, r)
		}
	}
	file.Close()

	backupPath := path + ".corrupted." + time.Now().Format("20060102-150405")
	if err := os.Rename(path, backupPath); err != nil {
		return fmt.Errorf("failed to backup corrupted file: %w", err)
	}

	l, err := Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	for _, r := range valid {
		if err := l.Append(r); err != nil {
			return err
		}
	}
	return nil
}
