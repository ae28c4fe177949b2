package provider

import "time"

// FileInfo is the single metadata snapshot a reader validates against.
type FileInfo struct {
	Size  int64
	Mtime time.Time
}

type GetMetadataRequest struct {
	Path string
}
type GetMetadataReply struct {
	Info FileInfo
}

type ReadRangeRequest struct {
	Path   string
	Offset int64
	Length int
}

// Data may hold fewer bytes than requested without that being an error.
// An empty Data signals end-of-data within the requested range.
type ReadRangeReply struct {
	Data []byte
}

// Provider is the narrow capability a stream reader needs from a backend.
// Concrete backends may be remote (S3), local, or embedded; the reader is
// generic over this interface.
type Provider interface {
	GetMetadata(*GetMetadataRequest) (*GetMetadataReply, error)
	ReadRange(*ReadRangeRequest) (*ReadRangeReply, error)
}
