package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, FormatPretty, "debug")
	require.NoError(t, err)

	l.WithFields(logrus.Fields{
		"search.depth": "2/0",
		"search.took":  1500 * time.Millisecond,
		"err":          errors.New("boom"),
		"battle":       "b1",
	}).Info("decided")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "decided", got["msg"])
	assert.Equal(t, "info", got["level"])
	assert.Equal(t, "boom", got["err"])
	assert.Contains(t, got["source"], "logging_test.go:")

	search, ok := got["search"].(map[string]any)
	require.True(t, ok, "dotted keys should nest: %v", got)
	assert.Equal(t, "2/0", search["depth"])
	assert.Equal(t, "1.5s", search["took"])
	assert.Contains(t, buf.String(), "\n  \"battle\"")
}

func TestNew_RejectsUnknown(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "xml", "info")
	assert.Error(t, err)
	_, err = New(&bytes.Buffer{}, FormatText, "loud")
	assert.Error(t, err)
}
