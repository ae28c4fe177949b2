package stream

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/foxlet/provfs/pkg/logg"
	"github.com/foxlet/provfs/pkg/provider"
	"github.com/foxlet/provfs/pkg/types"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

type ReadCallback func(n int, err error)
type LengthCallback func(size int64, err error)

// Reader streams one file from a provider, validating the caller's staleness
// expectation before the first operation. Results are always delivered
// asynchronously via the operation's callback, exactly once, never on the
// caller's stack.
//
// At most one operation may be in flight at a time; overlapping calls are a
// contract violation and panic. Close suppresses delivery of a pending
// callback; it must not be called from inside a callback.
type Reader struct {
	id       string
	path     string
	provider provider.Provider
	disp     *Dispatcher

	cursor        int64
	expectedMtime time.Time

	// Validation runs once, on whichever operation comes first. A NotFound
	// or Changed outcome is terminal; every later operation repeats it
	// without contacting the provider again.
	validated bool
	info      provider.FileInfo
	failure   error

	pending int32

	mu     sync.Mutex
	closed bool
}

// NewReader binds a reader to one path, one initial offset and one expected
// modification time. A zero expectedMtime disables staleness validation.
func NewReader(p provider.Provider, path string, offset int64, expectedMtime time.Time) *Reader {
	return &Reader{
		id:            uuid.NewString(),
		path:          path,
		provider:      p,
		disp:          NewDispatcher(p, path),
		cursor:        offset,
		expectedMtime: expectedMtime,
	}
}

// Read delivers up to length bytes from the current cursor into buf via cb.
// A delivered count of 0 with a nil error means end-of-file; asking for more
// than remains is satisfied with the clamped amount. The cursor advances by
// the number of bytes delivered.
func (r *Reader) Read(buf []byte, length int, cb ReadCallback) {
	r.acquire()
	if length > len(buf) {
		length = len(buf)
	}
	go r.runRead(buf, length, cb)
}

// GetLength delivers the file's total size via cb. It shares the one-shot
// validation with Read and does not touch the cursor.
func (r *Reader) GetLength(cb LengthCallback) {
	r.acquire()
	go r.runGetLength(cb)
}

// Close suppresses delivery of any not-yet-delivered callback. The
// destination buffer stays owned by the caller throughout, so there is
// nothing else to release. Safe to call more than once.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *Reader) acquire() {
	if !atomic.CompareAndSwapInt32(&r.pending, 0, 1) {
		panic("stream: overlapping operation on reader " + r.id)
	}
}

func (r *Reader) runRead(buf []byte, length int, cb ReadCallback) {
	timer := prometheus.NewTimer(opDurationsHistogram.WithLabelValues("read"))
	defer timer.ObserveDuration()

	info, err := r.validate()
	if err != nil {
		r.deliverRead(cb, 0, err)
		return
	}

	n, err := r.disp.FillFrom(r.cursor, length, info.Size, buf)
	if err != nil {
		r.deliverRead(cb, 0, err)
		return
	}

	r.cursor += int64(n)
	readBytes.Add(float64(n))
	r.deliverRead(cb, n, nil)
}

func (r *Reader) runGetLength(cb LengthCallback) {
	timer := prometheus.NewTimer(opDurationsHistogram.WithLabelValues("getlength"))
	defer timer.ObserveDuration()

	info, err := r.validate()
	if err != nil {
		r.deliverLength(cb, 0, err)
		return
	}

	r.deliverLength(cb, info.Size, nil)
}

func (r *Reader) validate() (provider.FileInfo, error) {
	if r.failure != nil {
		return provider.FileInfo{}, r.failure
	}
	if r.validated {
		return r.info, nil
	}

	info, err := Validate(r.provider, r.path, r.expectedMtime)
	if err != nil {
		switch err {
		case types.ErrNotFound:
			validationOutcomes.WithLabelValues("not_found").Inc()
			r.failure = err
		case types.ErrChanged:
			validationOutcomes.WithLabelValues("changed").Inc()
			r.failure = err
		}
		logg.Dlog.Debugf("reader %s validation of %s failed: %v", r.id, r.path, err)
		return provider.FileInfo{}, err
	}

	validationOutcomes.WithLabelValues("ok").Inc()
	r.validated = true
	r.info = info
	return info, nil
}

// deliverRead clears the pending guard and invokes cb unless the reader was
// closed first. The guard drops before the callback runs so that a callback
// may immediately issue the reader's next operation.
func (r *Reader) deliverRead(cb ReadCallback, n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	atomic.StoreInt32(&r.pending, 0)
	if r.closed {
		return
	}
	cb(n, err)
}

func (r *Reader) deliverLength(cb LengthCallback, size int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	atomic.StoreInt32(&r.pending, 0)
	if r.closed {
		return
	}
	cb(size, err)
}
