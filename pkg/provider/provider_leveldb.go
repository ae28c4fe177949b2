package provider

import (
	"strconv"
	"time"

	"github.com/foxlet/provfs/pkg/types"
	"github.com/syndtr/goleveldb/leveldb"
)

const (
	dataKeyPrefix = "d:"
	metaKeyPrefix = "m:"
)

// LevelDBProvider is an embedded blob-store backend. File content lives under
// "d:<path>" and the modification time under "m:<path>" as unix nanoseconds.
type LevelDBProvider struct {
	db *leveldb.DB
}

func NewLevelDBProvider(dbPath string) (*LevelDBProvider, error) {
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBProvider{db: db}, nil
}

func (p *LevelDBProvider) Close() error {
	return p.db.Close()
}

// Put stores or replaces a file together with its modification time.
func (p *LevelDBProvider) Put(path string, data []byte, mtime time.Time) error {
	batch := new(leveldb.Batch)
	batch.Put([]byte(dataKeyPrefix+path), data)
	batch.Put([]byte(metaKeyPrefix+path), []byte(strconv.FormatInt(mtime.UnixNano(), 10)))
	return p.db.Write(batch, nil)
}

func (p *LevelDBProvider) Remove(path string) error {
	batch := new(leveldb.Batch)
	batch.Delete([]byte(dataKeyPrefix + path))
	batch.Delete([]byte(metaKeyPrefix + path))
	return p.db.Write(batch, nil)
}

func (p *LevelDBProvider) GetMetadata(req *GetMetadataRequest) (*GetMetadataReply, error) {
	raw, err := p.db.Get([]byte(metaKeyPrefix+req.Path), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	nanos, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return nil, err
	}

	data, err := p.db.Get([]byte(dataKeyPrefix+req.Path), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	reply := &GetMetadataReply{}
	reply.Info.Size = int64(len(data))
	reply.Info.Mtime = time.Unix(0, nanos)
	return reply, nil
}

func (p *LevelDBProvider) ReadRange(req *ReadRangeRequest) (*ReadRangeReply, error) {
	data, err := p.db.Get([]byte(dataKeyPrefix+req.Path), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	if req.Offset >= int64(len(data)) {
		return &ReadRangeReply{}, nil
	}

	end := req.Offset + int64(req.Length)
	if end > int64(len(data)) {
		end = int64(len(data))
	}

	chunk := make([]byte, end-req.Offset)
	copy(chunk, data[req.Offset:end])
	return &ReadRangeReply{Data: chunk}, nil
}
