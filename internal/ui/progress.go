package ui

import (
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// Spinner shows an indeterminate progress indicator while a slow step runs
type Spinner struct {
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewSpinner creates a new spinner; call Start to animate it
func NewSpinner(description string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
	return &Spinner{
		bar:  bar,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start animates the spinner until Stop is called
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.bar.Add(1)
			}
		}
	}()
}

// Stop halts and clears the spinner. Safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
		s.bar.Finish()
	})
}

// Spin runs fn while a spinner with the given description is shown
func Spin(description string, fn func() error) error {
	s := NewSpinner(description)
	s.Start()
	defer s.Stop()
	return fn()
}
