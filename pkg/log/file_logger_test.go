package log

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoggerWritesCBOR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.cbor")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	logger.Log(Event{
		Timestamp: time.Now(),
		RunID:     "run-1",
		Task:      "button1",
		Category:  CategoryFault,
		Fault:     &FaultEvent{Source: "input", Message: "edge interrupt lost"},
	})
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.Equal(t, "button1", decoded.Task)
	require.NotNil(t, decoded.Fault)
	assert.Equal(t, "edge interrupt lost", decoded.Fault.Message)
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.cbor")

	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		require.NoError(t, err)
		logger.Log(Event{RunID: "run", Category: CategoryLifecycle, Lifecycle: &LifecycleEvent{NewState: "RUNNING"}})
		require.NoError(t, logger.Close())
	}

	reader, err := NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	n := 0
	for {
		if _, err := reader.Next(); err != nil {
			break
		}
		n++
	}
	assert.Equal(t, 2, n)
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "x.cbor"))
	require.NoError(t, err)

	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())

	// Ignored after close.
	logger.Log(Event{})
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.cbor")
	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				logger.Log(Event{RunID: "run", Category: CategoryTransition, Transition: &TransitionEvent{State: "Pressed"}})
			}
		}()
	}
	wg.Wait()
	require.NoError(t, logger.Close())

	reader, err := NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	n := 0
	for {
		if _, err := reader.Next(); err != nil {
			break
		}
		n++
	}
	assert.Equal(t, 200, n)
	assert.Zero(t, logger.Dropped())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (failingWriter) Close() error              { return nil }

func TestFileLoggerCountsDropped(t *testing.T) {
	logger := NewWriterLogger(failingWriter{})
	logger.Log(Event{})
	logger.Log(Event{})
	assert.Equal(t, 2, logger.Dropped())
}
