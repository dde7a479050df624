package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var (
	spinnerFrames      = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	plainSpinnerFrames = []string{"|", "/", "-", "\\"}
)

// Spinner animates a progress line on the output writer while a device
// is being contacted. It never draws in JSON mode.
type Spinner struct {
	message string
	out     io.Writer
	stop    chan struct{}
	done    chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewSpinner creates a spinner that draws to the current output writer.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		out:     Writer(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins the animation. Only the first call has an effect.
func (s *Spinner) Start() {
	s.startOnce.Do(func() {
		if JSONMode {
			close(s.done)
			return
		}
		go s.run()
	})
}

func (s *Spinner) run() {
	defer close(s.done)
	frames := spinnerFrames
	if NoColor() {
		frames = plainSpinnerFrames
	}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.stop:
			fmt.Fprint(s.out, "\r\033[K")
			return
		case <-ticker.C:
			fmt.Fprintf(s.out, "\r%s %s", frames[i%len(frames)], s.message)
		}
	}
}

// Stop ends the animation and returns once the line has been cleared. It
// may be called more than once, and before Start.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.startOnce.Do(func() { close(s.done) })
	<-s.done
}

// WithSpinner runs fn with a spinner and logs the outcome.
func WithSpinner(message string, fn func() error) error {
	sp := NewSpinner(message)
	sp.Start()
	err := fn()
	sp.Stop()
	if err != nil {
		Fail(message + ": failed")
	} else {
		Success(message)
	}
	return err
}

// SpinnerValue runs fn with a spinner and returns its result.
func SpinnerValue[T any](message string, fn func() (T, error)) (T, error) {
	var out T
	err := WithSpinner(message, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}
