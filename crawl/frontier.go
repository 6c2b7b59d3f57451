package crawl

import (
	"sync"

	"github.com/harshydav08/sitechat"
	"github.com/harshydav08/sitechat/bloom"
)

// Compile-time interface verification.
var _ sitechat.URLFrontier = (*Frontier)(nil)

// Frontier is a first-in first-out URL queue with visited tracking.
// A Bloom filter answers most "never seen" checks without touching the
// exact sets. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	filter  *bloom.Filter
	queued  map[string]struct{}
	visited map[string]struct{}
	queue   []string
}

// NewFrontier creates a Frontier whose filter is sized for n expected URLs
// at the given false positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		filter:  bloom.NewFilter(n, fpRate),
		queued:  make(map[string]struct{}),
		visited: make(map[string]struct{}),
	}
}

// Push appends url to the back of the queue.
// Returns false if the URL is already queued or has been visited.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.known(url) {
		return false
	}
	f.filter.Add(url)
	f.queued[url] = struct{}{}
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns the URL at the front of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	delete(f.queued, url)
	return url, true
}

// Visit marks url as visited. Returns false if it already was.
func (f *Frontier) Visit(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.visited[url]; ok {
		return false
	}
	f.filter.Add(url)
	f.visited[url] = struct{}{}
	return true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL is queued or has been visited.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.known(url)
}

func (f *Frontier) known(url string) bool {
	if !f.filter.MaybeContains(url) {
		return false
	}
	if _, ok := f.queued[url]; ok {
		return true
	}
	_, ok := f.visited[url]
	return ok
}
