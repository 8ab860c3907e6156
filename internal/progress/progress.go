package progress

import (
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Bar renders manifest preparation progress on a terminal. It satisfies
// loader.Tracker.
type Bar struct {
	total       int64
	current     int64
	width       int
	writer      io.Writer
	mu          sync.Mutex
	currentDirs map[string]bool
	enabled     bool
	lastUpdate  time.Time
}

// New creates a bar writing to w. Rendering is only enabled when w is a
// terminal.
func New(total int64, w io.Writer) *Bar {
	return &Bar{
		total:       total,
		width:       50,
		writer:      w,
		currentDirs: make(map[string]bool),
		enabled:     isTerminal(w),
		lastUpdate:  time.Now(),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Enable overrides terminal detection.
func (b *Bar) Enable(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = on
}

func (b *Bar) SetDirectory(dir string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.enabled {
		return
	}
	b.currentDirs[dir] = true
}

func (b *Bar) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++
	if !b.enabled {
		return
	}

	// Update at most every 100ms to reduce flickering
	now := time.Now()
	if now.Sub(b.lastUpdate) > 100*time.Millisecond || b.current == b.total {
		b.lastUpdate = now
		b.render()
	}
}

// render must be called with mu already locked
func (b *Bar) render() {
	if b.total == 0 {
		return
	}

	current := b.current
	if current > b.total {
		current = b.total
	}
	percent := float64(current) / float64(b.total) * 100
	filledWidth := int(float64(b.width) * float64(current) / float64(b.total))

	bar := strings.Repeat("█", filledWidth) + strings.Repeat("░", b.width-filledWidth)

	dirs := make([]string, 0, len(b.currentDirs))
	for dir := range b.currentDirs {
		dirs = append(dirs, path.Base(dir))
	}
	sort.Strings(dirs)

	var dirDisplay string
	if len(dirs) > 0 {
		if len(dirs) > 3 {
			dirDisplay = fmt.Sprintf(" | %s, %s, %s +%d more", dirs[0], dirs[1], dirs[2], len(dirs)-3)
		} else {
			dirDisplay = " | " + strings.Join(dirs, ", ")
		}
	}

	// Clear the line and write progress
	fmt.Fprintf(b.writer, "\r\033[K[%s] %3d%% (%d/%d)%s",
		bar, int(percent), current, b.total, dirDisplay)
}

func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.enabled {
		return
	}

	b.current = b.total
	b.render()
	fmt.Fprintf(b.writer, "\n")
}
