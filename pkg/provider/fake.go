package provider

import (
	"sync"
	"time"

	"github.com/foxlet/provfs/pkg/types"
)

// Default fixture served by a freshly constructed FakeProvider.
const (
	FakeFilePath = "/fixture.txt"
	FakeFileText = "It's a fake file with a fixed body used by reader tests."
)

var FakeFileMtime = time.Date(2014, time.April, 24, 0, 46, 52, 0, time.UTC)

type fakeEntry struct {
	data  []byte
	mtime time.Time
}

// FakeProvider is an in-memory backend for tests and examples. MaxChunk, when
// set, caps how many bytes a single ReadRange call returns, so partial-read
// handling in callers can be exercised.
type FakeProvider struct {
	mu      sync.Mutex
	entries map[string]*fakeEntry

	MaxChunk  int
	ReadDelay time.Duration

	metadataCalls int
	readCalls     int
}

func NewFakeProvider() *FakeProvider {
	p := &FakeProvider{
		entries: make(map[string]*fakeEntry),
	}
	p.AddFile(FakeFilePath, []byte(FakeFileText), FakeFileMtime)
	return p
}

func (p *FakeProvider) AddFile(path string, data []byte, mtime time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[path] = &fakeEntry{data: data, mtime: mtime}
}

func (p *FakeProvider) RemoveFile(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, path)
}

func (p *FakeProvider) MetadataCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metadataCalls
}

func (p *FakeProvider) ReadCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readCalls
}

func (p *FakeProvider) GetMetadata(req *GetMetadataRequest) (*GetMetadataReply, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.metadataCalls++

	entry, ok := p.entries[req.Path]
	if !ok {
		return nil, types.ErrNotFound
	}

	reply := &GetMetadataReply{}
	reply.Info.Size = int64(len(entry.data))
	reply.Info.Mtime = entry.mtime
	return reply, nil
}

func (p *FakeProvider) ReadRange(req *ReadRangeRequest) (*ReadRangeReply, error) {
	p.mu.Lock()
	p.readCalls++
	entry, ok := p.entries[req.Path]
	delay := p.ReadDelay
	maxChunk := p.MaxChunk
	p.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if !ok {
		return nil, types.ErrNotFound
	}

	if req.Offset >= int64(len(entry.data)) {
		return &ReadRangeReply{}, nil
	}

	length := req.Length
	if maxChunk > 0 && length > maxChunk {
		length = maxChunk
	}

	end := req.Offset + int64(length)
	if end > int64(len(entry.data)) {
		end = int64(len(entry.data))
	}

	chunk := make([]byte, end-req.Offset)
	copy(chunk, entry.data[req.Offset:end])
	return &ReadRangeReply{Data: chunk}, nil
}
