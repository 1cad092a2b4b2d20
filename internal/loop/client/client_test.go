package client

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/towerstack/internal/config"
	"github.com/tomz197/towerstack/internal/game"
	"github.com/tomz197/towerstack/internal/logging"
	"github.com/tomz197/towerstack/internal/loop/server"
)

type fakeServer struct {
	mu           sync.Mutex
	handle       *server.ClientHandle
	events       []game.Event
	unregistered bool
	snapshot     server.Snapshot
}

func (f *fakeServer) RegisterClient(username string) *server.ClientHandle {
	f.handle = &server.ClientHandle{
		ID:        1,
		SessionID: uuid.New(),
		Username:  username,
		EventsCh:  make(chan server.ClientEvent, 16),
	}
	return f.handle
}

func (f *fakeServer) UnregisterClient(int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unregistered = true
}

func (f *fakeServer) ReportEvent(_ int, ev game.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeServer) GetSnapshot() *server.Snapshot { return &f.snapshot }

func (f *fakeServer) outcomes() []game.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []game.Outcome
	for _, ev := range f.events {
		out = append(out, ev.Outcome)
	}
	return out
}

func fixedSize() (int, int, error) { return 120, 40, nil }

func newTestClient(t *testing.T, r io.Reader, w io.Writer) (*Client, *fakeServer) {
	t.Helper()
	fs := &fakeServer{}
	c := NewClient(fs, bufio.NewReader(r), w, ClientOptions{
		TermSizeFunc: fixedSize,
		Username:     "tester",
	})
	return c, fs
}

func TestRunStartsGameAndQuits(t *testing.T) {
	pr, pw := io.Pipe()
	var out bytes.Buffer
	c, fs := newTestClient(t, pr, &out)

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	_, err := pw.Write([]byte(" "))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return len(fs.outcomes()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []game.Outcome{game.OutcomeStarted}, fs.outcomes())

	_, err = pw.Write([]byte("q"))
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("client did not quit")
	}
	fs.mu.Lock()
	assert.True(t, fs.unregistered)
	fs.mu.Unlock()
}

func TestActivationsReachSession(t *testing.T) {
	c, fs := newTestClient(t, strings.NewReader(""), io.Discard)

	c.state.Input.Activations = 2
	for i := 0; i < c.state.Input.Activations; i++ {
		c.session.Activate()
	}

	// Immediate drop after start lands off the base and ends the game.
	assert.Equal(t, []game.Outcome{game.OutcomeStarted, game.OutcomeMiss}, fs.outcomes())
	assert.Equal(t, 1, c.state.GamesPlayed)

	c.update()
	assert.Equal(t, ScreenGameOver, c.state.Screen)
}

func TestCRLFEnterOnlyStartsGame(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c, fs := newTestClient(t, pr, io.Discard)

	go func() { _, _ = pw.Write([]byte("\r\n")) }()
	require.Eventually(t, func() bool {
		c.processInput()
		return len(fs.outcomes()) > 0
	}, 2*time.Second, 5*time.Millisecond)
	c.processInput()

	assert.Equal(t, []game.Outcome{game.OutcomeStarted}, fs.outcomes())
	assert.Equal(t, game.StateRunning, c.session.State())
	assert.True(t, c.state.Running)
}

func TestQuitReasonLogged(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "q key", input: "q", want: "player quit"},
		{name: "end of input", input: "", want: "input closed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			pr, pw := io.Pipe()
			c := NewClient(&fakeServer{}, bufio.NewReader(pr), io.Discard, ClientOptions{
				TermSizeFunc: fixedSize,
				Logger:       logging.New(&logs, log.InfoLevel),
			})

			if tt.input != "" {
				go func() { _, _ = pw.Write([]byte(tt.input)) }()
			} else {
				require.NoError(t, pw.Close())
			}
			require.Eventually(t, func() bool {
				c.processInput()
				return !c.state.Running
			}, 2*time.Second, 5*time.Millisecond)
			assert.Contains(t, logs.String(), tt.want)
			_ = pw.Close()
		})
	}
}

func TestUpdateDerivesScreen(t *testing.T) {
	c, _ := newTestClient(t, strings.NewReader(""), io.Discard)

	c.update()
	assert.Equal(t, ScreenStart, c.state.Screen)

	c.session.Activate()
	c.update()
	assert.Equal(t, ScreenPlaying, c.state.Screen)
}

func TestServerEvents(t *testing.T) {
	c, fs := newTestClient(t, strings.NewReader(""), io.Discard)

	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventNewRecord, Username: "alice", Score: 12}
	c.processServerEvents()
	assert.Contains(t, c.state.notice, "alice")
	assert.Contains(t, c.state.notice, "12")

	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()
	assert.Equal(t, ScreenShutdown, c.state.Screen)
	assert.Equal(t, config.ShutdownDisplaySeconds, c.state.shutdownTimer)

	c.state.delta = time.Duration(config.ShutdownDisplaySeconds+1) * time.Second
	c.update()
	assert.False(t, c.state.Running)

	close(fs.handle.EventsCh)
	c.state.Running = true
	c.processServerEvents()
	assert.False(t, c.state.Running)
}

func TestNoticeExpires(t *testing.T) {
	s := NewClientState()
	s.setNotice("hello", 1)
	s.delta = 600 * time.Millisecond
	s.tickNotice()
	assert.Equal(t, "hello", s.notice)
	s.tickNotice()
	assert.Empty(t, s.notice)
}

func TestDrawFrameShowsOverlays(t *testing.T) {
	var out bytes.Buffer
	c, fs := newTestClient(t, strings.NewReader(""), &out)
	fs.snapshot = server.Snapshot{
		Players:   3,
		TopScores: []server.TopScoreEntry{{Username: "alice", Score: 7}},
	}

	c.update()
	require.NoError(t, c.drawFrame())
	frame := out.String()
	assert.Contains(t, frame, "T O W E R S T A C K")
	assert.Contains(t, frame, "Players: 3")
	assert.Contains(t, frame, "alice")

	c.session.Activate()
	c.session.Activate()
	c.update()
	out.Reset()
	require.NoError(t, c.drawFrame())
	assert.Contains(t, out.String(), "G A M E   O V E R")
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "player", truncateName(""))
	assert.Equal(t, "bob", truncateName("bob"))
	assert.Len(t, []rune(truncateName(strings.Repeat("é", 40))), config.MaxUsernameLength)
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(200, 60)
	assert.Equal(t, config.MaxTermWidth, w)
	assert.Equal(t, config.MaxTermHeight, h)
	assert.Equal(t, 20, col)
	assert.Equal(t, 5, row)

	w, h, col, row = clampTermSize(80, 24)
	assert.Equal(t, []int{80, 24, 0, 0}, []int{w, h, col, row})
}
