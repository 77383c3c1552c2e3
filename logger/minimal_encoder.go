package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var bufferPool = buffer.NewPool()

// minimalEncoder renders a compact single-line console format:
// "13:04:35  WARN  generate  dropped type  reason=missing type=pkg.Foo"
// The level is shown only for non-info entries.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder // context fields added through With()
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(ent.Time.Format("15:04:05"))

	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(ent.Level.CapitalString())
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(ent.LoggerName)
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	values := enc.Clone().(*minimalEncoder)
	for _, f := range fields {
		f.AddTo(values.MapObjectEncoder)
	}
	if len(values.Fields) > 0 {
		final.AppendString("  ")
		final.AppendString(formatFields(values.Fields))
	}

	final.AppendString("\n")
	return final, nil
}

// formatFields renders fields as key=value pairs sorted by key.
func formatFields(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}
