package spinner

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStart_StopClearsLineAndBlocks(t *testing.T) {
	var buf bytes.Buffer
	stop := Start(&buf, "checking links")
	time.Sleep(4 * interval)
	stop()

	// Once stop returns the goroutine is done; later output (a lint report,
	// say) can never interleave with a frame.
	after := buf.String()
	require.Contains(t, after, "checking links")
	require.True(t, strings.HasSuffix(after, "\r"), "stop must leave the line cleared: %q", after)

	time.Sleep(4 * interval)
	require.Equal(t, after, buf.String())
}

func TestStart_StopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	stop := Start(&buf, "working")
	stop()
	stop()
}
