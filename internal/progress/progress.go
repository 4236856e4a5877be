// Package progress defines the observer interface the ranker and
// simulator report their work through, plus a terminal-bar implementation
// backed by schollz/progressbar and a no-op for non-interactive callers.
package progress

import "github.com/schollz/progressbar/v3"

// Observer receives progress updates from a long-running scan. Update may
// be called with a changing total if the scan's scope was only
// discovered partway through; Finish is called exactly once when the scan
// completes or is abandoned.
type Observer interface {
	Update(done, total int)
	Finish()
}

// NopObserver discards every update. It is the default when a caller
// does not want terminal output, e.g. during tests or library use.
type NopObserver struct{}

func (NopObserver) Update(done, total int) {}
func (NopObserver) Finish()                {}

// Bar adapts schollz/progressbar to the Observer interface.
type Bar struct {
	bar *progressbar.ProgressBar
}

// NewBar creates a terminal progress bar with the given initial total and
// description.
func NewBar(total int, description string) *Bar {
	return &Bar{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (b *Bar) Update(done, total int) {
	if b.bar.GetMax() != total {
		b.bar.ChangeMax(total)
	}
	_ = b.bar.Set(done)
}

func (b *Bar) Finish() {
	_ = b.bar.Finish()
}
