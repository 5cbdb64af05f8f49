package imagery

import (
	"context"
	"sync"

	"github.com/pagelight/pagelight/internal/logger"
)

// Request asks the loader for a rasterized frame. Seq lets the host discard
// stale deliveries when a newer request has superseded this one.
type Request struct {
	Seq   int
	Path  string
	Cols  int
	Rows  int
	Scale float64
}

// Result carries the rendered frame, or the failure, back to the host.
type Result struct {
	Request
	Frame string
	Info  *Info
	Err   error
}

// Loader decodes and rasterizes images on a bounded worker pool so the UI
// goroutine never blocks on disk or pixel work.
type Loader struct {
	jobs    chan Request
	results chan Result
	workers int
	log     *logger.Logger

	startOnce sync.Once
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewLoader creates a loader with the given concurrency (defaults to 2).
func NewLoader(workers int, log *logger.Logger) *Loader {
	if workers <= 0 {
		workers = 2
	}
	return &Loader{
		jobs:    make(chan Request, 32),
		results: make(chan Result, 32),
		workers: workers,
		log:     log.WithComponent("imagery"),
	}
}

// Start launches the workers. They exit when the context is cancelled or
// the loader is closed.
func (l *Loader) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		for i := 0; i < l.workers; i++ {
			l.wg.Add(1)
			go l.worker(ctx)
		}
	})
}

func (l *Loader) worker(ctx context.Context) {
	defer l.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-l.jobs:
			if !ok {
				return
			}
			result := l.process(req)
			select {
			case <-ctx.Done():
				return
			case l.results <- result:
			}
		}
	}
}

func (l *Loader) process(req Request) Result {
	img, err := Load(req.Path)
	if err != nil {
		l.log.Error(err, "image load failed")
		return Result{Request: req, Err: err}
	}

	info, _ := Inspect(req.Path)
	frame := Rasterize(img, req.Cols, req.Rows, req.Scale)
	return Result{Request: req, Frame: frame, Info: info}
}

// Submit queues one request without blocking. A full queue drops the
// request; the host simply re-requests on its next paint.
func (l *Loader) Submit(req Request) bool {
	select {
	case l.jobs <- req:
		return true
	default:
		return false
	}
}

// Results exposes the delivery channel for the host's message pump.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Close stops accepting work and waits for in-flight jobs to drain.
func (l *Loader) Close() {
	l.closeOnce.Do(func() {
		close(l.jobs)
		l.wg.Wait()
		close(l.results)
	})
}
