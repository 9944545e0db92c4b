package logging

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// PrettyJSONFormatter prints one indented JSON object per entry. It is meant
// for reading logs in a terminal, not for throughput.
type PrettyJSONFormatter struct {
	// AddSource adds file:line when the logger has ReportCaller set.
	AddSource bool
}

func (f *PrettyJSONFormatter) Format(e *logrus.Entry) ([]byte, error) {
	payload := make(map[string]any, len(e.Data)+4)

	when := e.Time
	if when.IsZero() {
		when = time.Now()
	}
	payload["time"] = when.Format(time.RFC3339Nano)
	payload["level"] = e.Level.String()
	payload["msg"] = e.Message

	if f.AddSource && e.HasCaller() {
		payload["source"] = compactSource(e.Caller.File, e.Caller.Line)
	}

	for k, v := range e.Data {
		addField(payload, k, v)
	}

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		// Avoid dropping the entry when a field does not marshal.
		b = []byte("{\"time\":" + strconv.Quote(payload["time"].(string)) +
			",\"level\":" + strconv.Quote(e.Level.String()) +
			",\"msg\":" + strconv.Quote(e.Message) + "}")
	}
	return append(b, '\n'), nil
}

// addField nests dotted keys ("search.depth") under their group.
func addField(root map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	dst := root
	for _, g := range parts[:len(parts)-1] {
		m, ok := dst[g].(map[string]any)
		if !ok {
			m = map[string]any{}
			dst[g] = m
		}
		dst = m
	}
	dst[parts[len(parts)-1]] = valueToAny(v)
}

func valueToAny(v any) any {
	switch x := v.(type) {
	case error:
		return x.Error()
	case time.Duration:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return x.String()
	default:
		return v
	}
}

func compactSource(file string, line int) string {
	if file == "" {
		return ""
	}
	if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
		file = file[idx+1:]
	}
	return file + ":" + strconv.Itoa(line)
}
