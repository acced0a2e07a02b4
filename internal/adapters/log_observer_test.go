package adapters

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"python-versions/internal/types"
)

func TestLogObserverAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	observer := NewLogObserverAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	observer.Observe(types.CheckEvent{Level: types.EventLevelDebug, Package: "a.rpm", Message: "Checking a.rpm"})
	observer.Observe(types.CheckEvent{Level: types.EventLevelWarn, Package: "eric.rpm", Message: "excluded"})
	observer.Observe(types.CheckEvent{Level: types.EventLevelError, Message: "dual"})
	observer.Observe(types.CheckEvent{Level: types.EventLevelInfo, Package: "b.rpm", Message: "ok"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	want := []struct{ level, pkg, msg string }{
		{"debug", "a.rpm", "Checking a.rpm"},
		{"warn", "eric.rpm", "excluded"},
		{"error", "", "dual"},
		{"info", "b.rpm", "ok"},
	}
	for i, line := range lines {
		var entry map[string]string
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, want[i].level, entry["level"])
		assert.Equal(t, want[i].pkg, entry["package"])
		assert.Equal(t, want[i].msg, entry["message"])
	}
}

func TestLogObserverAdapter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	observer := NewLogObserverAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))
	observer.Observe(types.CheckEvent{Level: types.EventLevelDebug, Message: "hidden"})
	assert.Empty(t, buf.String())
}
