package loop

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/towerstack/internal/draw"
	"github.com/tomz197/towerstack/internal/logging"
)

// lockedBuffer is safe to read while the server goroutine still logs.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunQuits(t *testing.T) {
	var out bytes.Buffer
	var logs lockedBuffer
	ctx := logging.WithLogger(context.Background(), logging.New(&logs, log.InfoLevel))
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, bufio.NewReader(strings.NewReader("q")), &out, Options{
			Username:     "local",
			TermSizeFunc: func() (int, int, error) { return 100, 30, nil },
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("game did not quit")
	}
	assert.Contains(t, out.String(), draw.MouseOn)
	assert.Contains(t, out.String(), draw.MouseOff)
	assert.Contains(t, logs.String(), "starting local game")
}
