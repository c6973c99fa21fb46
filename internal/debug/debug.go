package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/pkg/errors"
)

var (
	once   sync.Once
	logger *slog.Logger
	output = &switchWriter{w: io.Discard}
)

// switchWriter lets the log destination be set after package-level loggers are created.
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *switchWriter) swap(w io.Writer) io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.w
	s.w = w
	return previous
}

// GetLogger returns a singleton slog logger instance.
// Output is discarded until SetOutputFile is called.
func GetLogger() *slog.Logger {
	once.Do(func() {
		logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}))
	})
	return logger
}

// SetOutputFile directs the debug log to the given file, appending to it.
func SetOutputFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return errors.Wrapf(err, "opening debug log %s", path)
	}
	if previous, ok := output.swap(f).(io.Closer); ok {
		previous.Close()
	}
	return nil
}
