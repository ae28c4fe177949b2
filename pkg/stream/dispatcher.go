package stream

import (
	"github.com/foxlet/provfs/pkg/config"
	"github.com/foxlet/provfs/pkg/logg"
	"github.com/foxlet/provfs/pkg/provider"
)

// Dispatcher turns one requested read into one or more provider-level range
// reads, clamped against the remaining file size.
type Dispatcher struct {
	provider provider.Provider
	path     string
}

func NewDispatcher(p provider.Provider, path string) *Dispatcher {
	return &Dispatcher{provider: p, path: path}
}

// FillFrom copies up to length bytes starting at cursor into buf, never past
// size. It returns the number of bytes copied; 0 with a nil error means
// end-of-file. A provider call may come back short, so the loop re-issues
// range reads at an advanced offset until the clamped length is satisfied or
// the provider reports end-of-data.
func (d *Dispatcher) FillFrom(cursor int64, length int, size int64, buf []byte) (int, error) {
	remaining := size - cursor
	if remaining < 0 {
		remaining = 0
	}

	effective := length
	if int64(effective) > remaining {
		effective = int(remaining)
	}
	if effective <= 0 {
		return 0, nil
	}

	chunkSize := config.GetChunkSize()

	var n int
	for n < effective {
		want := effective - n
		if want > chunkSize {
			want = chunkSize
		}

		reply, err := d.provider.ReadRange(&provider.ReadRangeRequest{
			Path:   d.path,
			Offset: cursor + int64(n),
			Length: want,
		})
		if err != nil {
			logg.Dlog.Errorf("read range %s %d~%d error %v", d.path, cursor+int64(n), want, err)
			return 0, err
		}

		if len(reply.Data) == 0 {
			// Provider signalled end-of-data inside the range.
			break
		}

		n += copy(buf[n:effective], reply.Data)
	}

	return n, nil
}
