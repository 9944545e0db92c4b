package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Schema is stamped into every archive file's key/value metadata.
const Schema = "decision_row_v1"

// DecisionRow is one side's decision at one turn of an archived battle.
//
// Key is the hex form of the compressed state the decision was made from, so
// rows from different battles that reached the same position can be joined.
// Candidates holds every scored selection as a JSON array of Candidate.
type DecisionRow struct {
	BattleID   string  `parquet:"battle_id,dict"`
	Turn       int32   `parquet:"turn"`
	Side       string  `parquet:"side,dict"`
	Generation int32   `parquet:"generation"`
	Depth      string  `parquet:"depth,dict"`
	Key        string  `parquet:"key"`
	Selection  string  `parquet:"selection,dict"`
	Score      float64 `parquet:"score"`
	Candidates []byte  `parquet:"candidates,optional,zstd"`
	Winner     string  `parquet:"winner,dict,optional"`
	Source     string  `parquet:"source,dict"`
}

// Candidate is one entry of DecisionRow.Candidates.
type Candidate struct {
	Selection string  `json:"selection"`
	Score     float64 `json:"score"`
}

// EncodeCandidates marshals the scored alternatives of a decision.
func EncodeCandidates(c []Candidate) ([]byte, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return json.Marshal(c)
}

// DecodeCandidates is the inverse of EncodeCandidates.
func DecodeCandidates(b []byte) ([]Candidate, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var c []Candidate
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return c, nil
}

func writerOptions() []parquet.WriterOption {
	return []parquet.WriterOption{
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.SkipPageBounds("candidates"),
		parquet.KeyValueMetadata("schema", Schema),
	}
}

// WriteDecisionsAtomic writes rows into outDir/tmp and then moves the file
// into outDir, so readers never observe a partially written archive.
func WriteDecisionsAtomic(outDir string, rows []DecisionRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("batch_%d.parquet", time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows, writerOptions()...); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return finalPath, nil
}

// ReadDecisions loads every row of an archive file.
func ReadDecisions(path string) ([]DecisionRow, error) {
	rows, err := parquet.ReadFile[DecisionRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}
