package stream

import (
	"time"

	"github.com/foxlet/provfs/pkg/provider"
	"github.com/foxlet/provfs/pkg/types"
)

// Validate fetches the file's metadata and checks it against the caller's
// expected modification time. A zero expected time disables the check
// entirely; this is intentional and callers rely on it. The comparison is
// exact equality, not ordering: the expectation is a snapshot taken earlier,
// and any divergence in either direction invalidates it.
func Validate(p provider.Provider, path string, expectedMtime time.Time) (provider.FileInfo, error) {
	reply, err := p.GetMetadata(&provider.GetMetadataRequest{Path: path})
	if err != nil {
		return provider.FileInfo{}, err
	}

	if !expectedMtime.IsZero() && !expectedMtime.Equal(reply.Info.Mtime) {
		return provider.FileInfo{}, types.ErrChanged
	}

	return reply.Info, nil
}
