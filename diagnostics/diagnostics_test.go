package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffsetPositionRoundTrip(t *testing.T) {
	registry := NewRegistry()
	id := registry.Register("main.wfl", "store x as 10\ndisplay x\n")
	file := registry.File(id)
	require.NotNil(t, file)

	for offset := 0; offset < len(file.Text); offset++ {
		pos := file.OffsetToPosition(offset)
		got := file.PositionToOffset(pos)
		require.Equal(t, offset, got, "round trip failed at offset %d (%v)", offset, pos)
	}
}

func TestNormalizeNewlines(t *testing.T) {
	registry := NewRegistry()
	id := registry.Register("crlf.wfl", "store x as 1\r\ndisplay x\r\n")
	file := registry.File(id)
	require.Equal(t, "store x as 1\ndisplay x\n", file.Text)
}

func TestReporterHasErrors(t *testing.T) {
	registry := NewRegistry()
	id := registry.Register("main.wfl", "display y\n")
	reporter := NewReporter(registry, nil)
	require.False(t, reporter.HasErrors())

	reporter.Errorf(id, "E0001", Position{Line: 1, Column: 9}, "undefined variable %q", "y")
	require.True(t, reporter.HasErrors())
	require.Len(t, reporter.Reports(), 1)

	rendered := reporter.Render(reporter.Reports()[0], false)
	require.Contains(t, rendered, "main.wfl:1:9")
	require.Contains(t, rendered, "undefined variable")
}
