package provider

import (
	"io"
	"os"
	"path/filepath"

	"github.com/foxlet/provfs/pkg/types"
)

// LocalProvider serves files from a directory on the local filesystem.
type LocalProvider struct {
	root string
}

func NewLocalProvider(root string) *LocalProvider {
	return &LocalProvider{root: root}
}

func (p *LocalProvider) resolve(path string) string {
	return filepath.Join(p.root, filepath.FromSlash(path))
}

func (p *LocalProvider) GetMetadata(req *GetMetadataRequest) (*GetMetadataReply, error) {
	fi, err := os.Stat(p.resolve(req.Path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	if fi.IsDir() {
		return nil, types.ErrNotFound
	}

	reply := &GetMetadataReply{}
	reply.Info.Size = fi.Size()
	reply.Info.Mtime = fi.ModTime()
	return reply, nil
}

func (p *LocalProvider) ReadRange(req *ReadRangeRequest) (*ReadRangeReply, error) {
	f, err := os.Open(p.resolve(req.Path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	defer f.Close()

	data := make([]byte, req.Length)
	n, err := f.ReadAt(data, req.Offset)
	if err != nil && err != io.EOF {
		return nil, err
	}

	return &ReadRangeReply{Data: data[:n]}, nil
}
