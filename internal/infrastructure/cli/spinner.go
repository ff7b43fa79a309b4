package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a status line with the elapsed seconds on w.
type Spinner struct {
	w     io.Writer
	label string
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// StartSpinner draws label on w until the returned spinner is stopped.
func StartSpinner(w io.Writer, label string) *Spinner {
	s := &Spinner{w: w, label: label, done: make(chan struct{})}
	s.wg.Add(1)
	go s.loop(time.Now())
	return s
}

func (s *Spinner) loop(started time.Time) {
	defer s.wg.Done()
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	for frame := 0; ; frame++ {
		select {
		case <-s.done:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case now := <-ticker.C:
			elapsed := int(now.Sub(started).Seconds())
			fmt.Fprintf(s.w, "\r%s %s %ds", spinnerFrames[frame%len(spinnerFrames)], s.label, elapsed)
		}
	}
}

// Stop clears the line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
}
