package exec

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// StreamingWriter formats subprocess output line by line with a prefix and
// color, flushing only complete lines so interleaved writes stay readable.
type StreamingWriter struct {
	prefix string
	style  lipgloss.Style
	writer io.Writer
	buffer []byte
}

// NewStreamingWriter creates a formatted output writer.
func NewStreamingWriter(writer io.Writer, prefix string, color lipgloss.Color) *StreamingWriter {
	return &StreamingWriter{
		prefix: prefix,
		style:  lipgloss.NewStyle().Foreground(color),
		writer: writer,
	}
}

// Write buffers incoming bytes and emits complete lines with the prefix
// and style applied.
func (s *StreamingWriter) Write(p []byte) (int, error) {
	s.buffer = append(s.buffer, p...)

	for {
		idx := strings.IndexByte(string(s.buffer), '\n')
		if idx < 0 {
			break
		}
		line := string(s.buffer[:idx])
		s.buffer = s.buffer[idx+1:]

		if _, err := s.writer.Write([]byte(s.style.Render(s.prefix+line) + "\n")); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush writes any buffered partial line.
func (s *StreamingWriter) Flush() error {
	if len(s.buffer) == 0 {
		return nil
	}
	_, err := s.writer.Write([]byte(s.style.Render(s.prefix+string(s.buffer)) + "\n"))
	s.buffer = s.buffer[:0]
	return err
}

// TeeWriter duplicates writes to multiple writers.
type TeeWriter struct {
	writers []io.Writer
}

// NewTeeWriter creates a writer that duplicates output to every writer.
func NewTeeWriter(writers ...io.Writer) *TeeWriter {
	return &TeeWriter{writers: writers}
}

// Write writes to all underlying writers.
func (t *TeeWriter) Write(p []byte) (int, error) {
	for _, w := range t.writers {
		if _, err := w.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// tailBuffer keeps the last max bytes written to it. Used to carry a bounded
// diagnostic tail on ExitError without buffering an entire install log.
//
// Run wires a single tailBuffer behind both stdout and stderr, and os/exec
// copies the two streams from separate goroutines, so Write must be safe
// for concurrent use.
type tailBuffer struct {
	mu  sync.Mutex
	buf []byte
	max int
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	if len(t.buf) > t.max {
		t.buf = t.buf[len(t.buf)-t.max:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return string(t.buf)
}
