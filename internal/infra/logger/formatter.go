package logger

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const defaultTimestampFormat = "2006-01-02 15:04:05,000"

// LineFormatter renders "time, LEVEL, message key=value ..." on a single line.
type LineFormatter struct {
	TimestampFormat string
}

func (f *LineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	layout := f.TimestampFormat
	if layout == "" {
		layout = defaultTimestampFormat
	}

	b := e.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	b.WriteString(e.Time.Format(layout))
	b.WriteString(", ")
	b.WriteString(levelName(e.Level))
	b.WriteString(", ")
	b.WriteString(strings.TrimRight(e.Message, "\n"))

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// fatal and panic both stop the process; they are reported as CRITICAL.
func levelName(l logrus.Level) string {
	switch l {
	case logrus.FatalLevel, logrus.PanicLevel:
		return "CRITICAL"
	case logrus.WarnLevel:
		return "WARNING"
	default:
		return strings.ToUpper(l.String())
	}
}
