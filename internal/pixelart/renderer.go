package pixelart

import (
	"context"
	"image"
	"sync"
)

// Result is the outcome of one submitted render.
//
// Seq identifies the submission it belongs to; consumers that care about
// ordering compare it against the value Submit returned, since a slow render
// may still slip a stale result into the channel right as a newer one is
// submitted.
type Result struct {
	Seq    uint64       // Submission sequence number
	Image  *image.NRGBA // Rendered image; nil when Err is set
	Params Params       // Parameters the render ran with
	Err    error        // Render failure or context.Canceled when superseded
}

// Renderer runs renders on worker goroutines with latest-wins semantics.
//
// Interactive callers re-submit on every committed parameter change, and
// renders are expensive, so submissions are never queued: a new Submit
// cancels the in-flight render and its result is discarded on arrival. At
// most one result is buffered; an unread stale result is replaced by the
// newer one.
//
// The source image is only read, never mutated, so it may be shared across
// superseded and current renders.
type Renderer struct {
	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	results chan Result
}

// NewRenderer returns a Renderer ready for submissions.
func NewRenderer() *Renderer {
	return &Renderer{
		results: make(chan Result, 1),
	}
}

// Submit starts a render of src with p, superseding any render still in
// flight. It returns immediately with the submission's sequence number; the
// outcome arrives on Results.
func (r *Renderer) Submit(src image.Image, p Params) uint64 {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	go func() {
		defer cancel()
		img, err := Render(ctx, src, p)

		r.mu.Lock()
		if seq != r.seq {
			// Superseded while rendering; drop the stale result.
			r.mu.Unlock()
			return
		}
		// Replace an unread older result rather than blocking.
		select {
		case <-r.results:
		default:
		}
		r.results <- Result{Seq: seq, Image: img, Params: p, Err: err}
		r.mu.Unlock()
	}()

	return seq
}

// Results delivers render outcomes. Superseded submissions produce no result.
func (r *Renderer) Results() <-chan Result {
	return r.results
}

// Close cancels any in-flight render. Results already buffered remain
// readable.
func (r *Renderer) Close() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()
}
