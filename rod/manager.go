package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the default number of pages rendered before the
// browser process is replaced.
const DefaultRecycleAfter = 75

// browserManager owns the headless Chrome process. Chrome's memory
// baseline creeps up across page loads, so the process is relaunched
// after recycleAfter pages.
//
// browserManager is safe for concurrent use.
type browserManager struct {
	mu           sync.Mutex
	browser      *rod.Browser
	launcher     *launcher.Launcher
	pages        atomic.Int64
	recycleAfter int64
	closed       atomic.Bool
}

func newBrowserManager(recycleAfter int64) (*browserManager, error) {
	if recycleAfter <= 0 {
		recycleAfter = DefaultRecycleAfter
	}
	bm := &browserManager{recycleAfter: recycleAfter}
	if err := bm.launch(); err != nil {
		return nil, err
	}
	return bm, nil
}

// acquire returns the live browser, relaunching it first when the page
// budget is spent. It returns nil after close.
func (bm *browserManager) acquire() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed.Load() {
		return nil
	}
	if bm.pages.Load() >= bm.recycleAfter {
		bm.recycle()
	}
	return bm.browser
}

// release records one rendered page.
func (bm *browserManager) release() {
	bm.pages.Add(1)
}

func (bm *browserManager) close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

func (bm *browserManager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = l
	return nil
}

// recycle swaps in a fresh browser. The old one is kept if the new
// launch fails. Must be called with mu held.
func (bm *browserManager) recycle() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher
	if err := bm.launch(); err != nil {
		bm.browser, bm.launcher = oldBrowser, oldLauncher
		return
	}
	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	bm.pages.Store(0)
}

func (bm *browserManager) pid() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}
