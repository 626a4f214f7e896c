package progressbar

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/timerzz/webdl/pkg/utils"
)

var spinner = []byte{'|', '/', '-', '\\'}

type cfg struct {
	interval   time.Duration
	finishHook func()
	title      string
	total      int64
	output     io.Writer
}

// Bar renders download progress on a single terminal line. With a known
// total it is determinate (percentage, rate, ETA); with a negative total it
// only shows activity. Bar is not safe for concurrent use.
type Bar struct {
	cur      int64
	lastSize int64
	lastTime time.Time
	start    time.Time
	rate     float64
	spin     int
	finished bool

	cfg cfg
}

func New(opts ...Option) *Bar {
	var c = cfg{
		interval: 200 * time.Millisecond,
		total:    -1,
		output:   os.Stdout,
	}
	for _, opt := range opts {
		opt(&c)
	}
	now := time.Now()
	return &Bar{
		cfg:      c,
		start:    now,
		lastTime: now,
	}
}

// Determinate reports whether the bar has a denominator.
func (b *Bar) Determinate() bool {
	return b.cfg.total > 0
}

func (b *Bar) Cur() int64 {
	return b.cur
}

// Add advances the bar by n bytes and redraws it at most once per interval.
func (b *Bar) Add(n int) {
	if n <= 0 || b.finished {
		return
	}
	b.cur += int64(n)
	if time.Since(b.lastTime) < b.cfg.interval {
		return
	}
	b.step()
	b.render()
}

// Finish draws the final state, terminates the line and runs the finish hook.
// Calling it more than once has no effect.
func (b *Bar) Finish() {
	if b.finished {
		return
	}
	b.finished = true
	if s := time.Since(b.start).Seconds(); s > 0 {
		b.rate = float64(b.cur) / s
	}
	b.render()
	fmt.Fprintln(b.cfg.output)
	if b.cfg.finishHook != nil {
		b.cfg.finishHook()
	}
}

func (b *Bar) step() {
	now := time.Now()
	if s := now.Sub(b.lastTime).Seconds(); s > 0 {
		b.rate = float64(b.cur-b.lastSize) / s
	}
	b.lastSize, b.lastTime = b.cur, now
	b.spin = (b.spin + 1) % len(spinner)
}

func (b *Bar) render() {
	rate := utils.RateFormat(b.rate)
	if !b.Determinate() {
		fmt.Fprintf(b.cfg.output, "\r %s %c %10s %14s", b.cfg.title, spinner[b.spin], humanize.IBytes(uint64(b.cur)), rate)
		return
	}
	percent := 100 * float64(b.cur) / float64(b.cfg.total)
	if percent > 100 {
		percent = 100
	}
	fmt.Fprintf(b.cfg.output, "\r %s %6.2f%% %10s/%-10s %14s ETA %s",
		b.cfg.title, percent,
		humanize.IBytes(uint64(b.cur)), humanize.IBytes(uint64(b.cfg.total)),
		rate, utils.ETAFormat(b.cfg.total-b.cur, b.rate))
}

type Option func(*cfg)

func WithInterval(duration time.Duration) func(*cfg) {
	return func(cfg *cfg) {
		cfg.interval = duration
	}
}

func WithTitle(title string) func(*cfg) {
	return func(cfg *cfg) {
		cfg.title = title
	}
}

// WithTotal sets the expected number of bytes, a negative value makes the
// bar indeterminate.
func WithTotal(total int64) func(*cfg) {
	return func(cfg *cfg) {
		cfg.total = total
	}
}

func WithOutput(w io.Writer) func(*cfg) {
	return func(cfg *cfg) {
		if w != nil {
			cfg.output = w
		}
	}
}

func WithFinishHook(h func()) func(*cfg) {
	return func(cfg *cfg) {
		cfg.finishHook = h
	}
}
