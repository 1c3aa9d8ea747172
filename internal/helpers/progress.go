package helpers

import (
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

type ProgressBar struct {
	Set   func(int)
	Add   func(int)
	Close func()
}

func CreateProgressBar(total int, label string, w io.Writer) ProgressBar {
	p := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(w, "\n")
		}),
	)
	return ProgressBar{
		func(i int) {
			_ = p.Set(i)
		},
		func(i int) {
			_ = p.Add(i)
		},
		func() {
			_ = p.Finish()
		},
	}
}

// NoProgress discards updates.
var NoProgress = ProgressBar{func(int) {}, func(int) {}, func() {}}

func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

func FormatRate(n int, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "-"
	}
	return humanize.Comma(int64(float64(n)/elapsed.Seconds())) + "/s"
}
