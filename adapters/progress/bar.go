package progress

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
)

const defaultRefresh = 100 * time.Millisecond

// BarReporter implements ports.ProgressPort with a terminal progress bar.
// Workers only bump an atomic counter; a separate goroutine copies it to
// the bar, so a slow terminal never holds up a trial.
type BarReporter struct {
	out     io.Writer
	refresh time.Duration

	done atomic.Int64
	bar  *progressbar.ProgressBar
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewBarReporter creates a progress bar writing to out
func NewBarReporter(out io.Writer) *BarReporter {
	return &BarReporter{out: out, refresh: defaultRefresh}
}

// Start draws an empty bar for total trials and begins refreshing it
func (r *BarReporter) Start(total int) {
	r.done.Store(0)
	r.bar = progressbar.NewOptions64(int64(total),
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription("trials"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionThrottle(r.refresh),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "#",
			SaucerHead:    ">",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	r.stop = make(chan struct{})

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.refresh)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = r.bar.Set64(r.done.Load())
			case <-r.stop:
				return
			}
		}
	}()
}

// Increment records one completed trial
func (r *BarReporter) Increment() {
	r.done.Add(1)
}

// Finish stops refreshing and draws the final state
func (r *BarReporter) Finish() {
	if r.bar == nil {
		return
	}
	close(r.stop)
	r.wg.Wait()
	_ = r.bar.Set64(r.done.Load())
	_ = r.bar.Finish()
	_, _ = io.WriteString(r.out, "\n")
	r.bar = nil
}

// Completed returns how many increments have been recorded since Start
func (r *BarReporter) Completed() int64 {
	return r.done.Load()
}

// Silent implements ports.ProgressPort and does nothing
type Silent struct{}

func (Silent) Start(int)  {}
func (Silent) Increment() {}
func (Silent) Finish()    {}
