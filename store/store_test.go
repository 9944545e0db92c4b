package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows(t *testing.T, battle string, n int) []DecisionRow {
	t.Helper()
	cands, err := EncodeCandidates([]Candidate{
		{Selection: "Earthquake", Score: 12.5},
		{Selection: "switch 1", Score: -3},
	})
	require.NoError(t, err)

	rows := make([]DecisionRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, DecisionRow{
			BattleID:   battle,
			Turn:       int32(i + 1),
			Side:       "ai",
			Generation: 4,
			Depth:      "2/0",
			Key:        "00ff",
			Selection:  "Earthquake",
			Score:      12.5,
			Candidates: cands,
			Source:     "selfplay",
		})
	}
	return rows
}

func TestWriteDecisionsAtomic(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDecisionsAtomic(dir, sampleRows(t, "b1", 3))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	tmp, err := os.ReadDir(filepath.Join(dir, "tmp"))
	require.NoError(t, err)
	assert.Empty(t, tmp, "tmp dir should be empty after rename")

	rows, err := ReadDecisions(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int32(3), rows[2].Turn)

	cands, err := DecodeCandidates(rows[0].Candidates)
	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.Equal(t, "switch 1", cands[1].Selection)
}

func TestBatchWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewBatchWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteBattle(sampleRows(t, "b1", 2)))
	require.NoError(t, w.WriteBattle(sampleRows(t, "b2", 4)))
	require.NoError(t, w.WriteBattle(nil))
	assert.Equal(t, 2, w.Battles())

	_, err = os.Stat(w.OutPath())
	assert.True(t, os.IsNotExist(err), "final file must not exist before Finalize")

	out, rows, battles, err := w.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 6, rows)
	assert.Equal(t, 2, battles)

	read, err := ReadDecisions(out)
	require.NoError(t, err)
	assert.Len(t, read, 6)

	assert.ErrorIs(t, w.WriteBattle(sampleRows(t, "b3", 1)), ErrClosed)
}

func TestBatchWriter_EmptyLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	w, err := NewBatchWriter(dir)
	require.NoError(t, err)

	out, rows, _, err := w.Finalize()
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, rows)

	_, err = os.Stat(w.TmpPath())
	assert.True(t, os.IsNotExist(err))
}

func TestWrittenLog_Dedupes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "written.log")
	l, err := OpenWrittenLog(path)
	require.NoError(t, err)

	require.NoError(t, l.Add("a"))
	require.NoError(t, l.AddMany([]string{"a", "b", "", "c"}))
	assert.Equal(t, 3, l.Count())
	require.NoError(t, l.Close())

	reopened, err := OpenWrittenLog(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.True(t, reopened.Has("b"))
	assert.False(t, reopened.Has("d"))
	assert.Equal(t, 3, reopened.Count())

	_, err = OpenWrittenLog("")
	assert.Error(t, err)
}
