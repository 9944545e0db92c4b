package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Formats accepted by New.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatText   = "text"
)

// New builds a logger writing to w in the given format and level.
func New(w io.Writer, format, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)

	switch format {
	case FormatPretty:
		l.SetFormatter(&PrettyJSONFormatter{AddSource: true})
		l.SetReportCaller(true)
	case FormatJSON, "":
		l.SetFormatter(&logrus.JSONFormatter{})
	case FormatText:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return l, nil
}
