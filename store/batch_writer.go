package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
)

var ErrClosed = errors.New("batch writer is closed")

// BatchWriter streams decision rows into a single parquet file under
// outDir/tmp and moves it into outDir on Finalize.
type BatchWriter struct {
	outDir  string
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[DecisionRow]

	battles int
	rows    int
}

func NewBatchWriter(outDir string) (*BatchWriter, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("batch_%d.parquet", time.Now().UnixNano())
	tmpPath := filepath.Join(tmpDir, name)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	return &BatchWriter{
		outDir:  absOut,
		tmpPath: tmpPath,
		outPath: filepath.Join(absOut, name),
		file:    f,
		writer:  parquet.NewGenericWriter[DecisionRow](f, writerOptions()...),
	}, nil
}

func (b *BatchWriter) TmpPath() string { return b.tmpPath }
func (b *BatchWriter) OutPath() string { return b.outPath }
func (b *BatchWriter) Battles() int    { return b.battles }
func (b *BatchWriter) Rows() int       { return b.rows }

// WriteBattle appends the rows of one finished battle.
func (b *BatchWriter) WriteBattle(rows []DecisionRow) error {
	if b.writer == nil || b.file == nil {
		return ErrClosed
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := b.writer.Write(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	b.rows += len(rows)
	b.battles++
	return nil
}

// Finalize closes the parquet writer and moves the file from tmp/ to outDir.
// If no rows were written the tmp file is removed and outPath is empty.
func (b *BatchWriter) Finalize() (outPath string, rows int, battles int, err error) {
	if b.writer == nil && b.file == nil {
		return "", 0, 0, nil
	}

	rows, battles = b.rows, b.battles

	var closeErr, fileErr error
	if b.writer != nil {
		closeErr = b.writer.Close()
		b.writer = nil
	}
	if b.file != nil {
		_ = b.file.Sync()
		fileErr = b.file.Close()
		b.file = nil
	}
	if closeErr != nil {
		return "", 0, 0, fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return "", 0, 0, fmt.Errorf("close parquet file: %w", fileErr)
	}

	if rows == 0 {
		_ = os.Remove(b.tmpPath)
		return "", 0, 0, nil
	}
	if err := os.Rename(b.tmpPath, b.outPath); err != nil {
		return "", 0, 0, fmt.Errorf("rename parquet: %w", err)
	}
	return b.outPath, rows, battles, nil
}
