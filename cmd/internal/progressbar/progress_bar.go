package progressbar

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/schollz/progressbar/v3"

	"github.com/odpf/dotnet-fetch/cmd/internal"
)

const (
	progressBarWidth           = 25
	progressBarRefreshDuration = 120 * time.Millisecond
)

// ProgressBar shows a spinner while waiting and a byte bar per download.
// It satisfies go-getter's ProgressTracker.
type ProgressBar struct {
	spinner *spinner.Spinner
	bar     *progressbar.ProgressBar

	mu     sync.Mutex
	writer io.Writer
}

// NewProgressBar initializes default progress bar, writing to stderr only if it is a terminal
func NewProgressBar() *ProgressBar {
	writer := io.Discard
	disableProgressIndicator := strings.ToLower(os.Getenv("DOTNET_FETCH_PROGRESS_INDICATOR"))
	if internal.IsTerminal(os.Stderr) && disableProgressIndicator != "false" {
		writer = os.Stderr
	}
	return NewProgressBarWithWriter(writer)
}

// NewProgressBarWithWriter initializes progress bar with writer
func NewProgressBarWithWriter(w io.Writer) *ProgressBar {
	return &ProgressBar{
		writer: w,
	}
}

// Start starts the spinner with label
func (p *ProgressBar) Start(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.spinner != nil {
		if label == "" {
			p.spinner.Suffix = ""
		} else {
			p.spinner.Suffix = " " + label
		}
		return
	}
	sp := spinner.New(spinner.CharSets[11], progressBarRefreshDuration,
		spinner.WithWriter(p.writer), spinner.WithColor("fgCyan"))
	if label != "" {
		sp.Suffix = " " + label
	}
	sp.Start()
	p.spinner = sp
}

// TrackProgress wraps stream so reading it advances a byte bar labelled src.
// A negative totalSize shows an indeterminate bar.
func (p *ProgressBar) TrackProgress(src string, currentSize, totalSize int64, stream io.ReadCloser) io.ReadCloser {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner()
	bar := progressbar.NewOptions64(totalSize,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(progressBarWidth),
		progressbar.OptionSetDescription("[cyan]"+src),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			io.WriteString(p.writer, "\n")
		}),
	)
	if currentSize > 0 {
		bar.Set64(currentSize)
	}
	p.bar = bar

	return &trackedStream{
		Reader: io.TeeReader(stream, bar),
		close: func() error {
			p.mu.Lock()
			defer p.mu.Unlock()
			bar.Finish()
			if p.bar == bar {
				p.bar = nil
			}
			return stream.Close()
		},
	}
}

// Stop stops the spinner and any running bar
func (p *ProgressBar) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()
	if p.bar != nil {
		p.bar.Finish()
		p.bar.Close()
	}
	p.bar = nil
}

func (p *ProgressBar) stopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
	}
	p.spinner = nil
}

type trackedStream struct {
	io.Reader
	close func() error
}

func (t *trackedStream) Close() error {
	return t.close()
}
