package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// WrittenLog tracks which battle IDs have been archived. It is an append-only
// file with one ID per line, loaded into memory on open. A partial final
// line left by a crash is read back as an ID that never matches.
type WrittenLog struct {
	mu      sync.RWMutex
	path    string
	file    *os.File
	written map[string]struct{}
}

func OpenWrittenLog(path string) (*WrittenLog, error) {
	if path == "" {
		return nil, fmt.Errorf("log path is required")
	}

	written := make(map[string]struct{})
	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			id := strings.TrimSpace(scanner.Text())
			if id == "" {
				continue
			}
			written[id] = struct{}{}
		}
		_ = f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &WrittenLog{
		path:    path,
		file:    file,
		written: written,
	}, nil
}

func (l *WrittenLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *WrittenLog) Has(battleID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.written[battleID]
	return ok
}

func (l *WrittenLog) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.written)
}

// AddMany appends the IDs not already present and syncs once.
func (l *WrittenLog) AddMany(battleIDs []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return fmt.Errorf("log file is closed")
	}

	added := 0
	for _, id := range battleIDs {
		if id == "" {
			continue
		}
		if _, ok := l.written[id]; ok {
			continue
		}
		if _, err := l.file.WriteString(id + "\n"); err != nil {
			return fmt.Errorf("append log: %w", err)
		}
		l.written[id] = struct{}{}
		added++
	}

	if added == 0 {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync log: %w", err)
	}
	return nil
}

func (l *WrittenLog) Add(battleID string) error {
	if battleID == "" {
		return fmt.Errorf("battleID is empty")
	}
	return l.AddMany([]string{battleID})
}
