package provider

import (
	"context"
	"io"
	"time"

	"github.com/foxlet/provfs/pkg/config"
	"github.com/foxlet/provfs/pkg/logg"
	"github.com/foxlet/provfs/pkg/types"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
)

type S3Provider struct {
	minioClient *minio.Core
	conf        config.ProviderConf

	objectReqsHistogram *prometheus.HistogramVec
	objectDataBytes     *prometheus.CounterVec
}

func NewS3Provider(conf config.ProviderConf, reg prometheus.Registerer) (*S3Provider, error) {
	p := &S3Provider{
		conf: conf,
	}

	minioClient, err := minio.NewCore(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}

	p.minioClient = minioClient
	p.initMetrics(reg)
	return p, nil
}

func (p *S3Provider) initMetrics(reg prometheus.Registerer) {
	p.objectReqsHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "object_request_durations_histogram_seconds",
		Help:    "Object requests latency distributions.",
		Buckets: prometheus.ExponentialBuckets(0.01, 1.5, 25),
	}, []string{"method"})

	p.objectDataBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "object_request_data_bytes",
		Help: "Object requests size in bytes.",
	}, []string{"method"})

	if reg == nil {
		return
	}

	reg.MustRegister(p.objectReqsHistogram)
	reg.MustRegister(p.objectDataBytes)
}

func (p *S3Provider) key(path string) string {
	key := path
	for len(key) > 0 && key[0] == '/' {
		key = key[1:]
	}
	return p.conf.Prefix + key
}

func (p *S3Provider) GetMetadata(req *GetMetadataRequest) (*GetMetadataReply, error) {
	st := time.Now()

	obj, err := p.minioClient.StatObject(
		context.Background(), p.conf.Bucket, p.key(req.Path), minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	p.objectReqsHistogram.WithLabelValues("HEAD").Observe(time.Since(st).Seconds())

	reply := &GetMetadataReply{}
	reply.Info.Size = obj.Size
	reply.Info.Mtime = obj.LastModified
	return reply, nil
}

func (p *S3Provider) ReadRange(req *ReadRangeRequest) (*ReadRangeReply, error) {
	st := time.Now()
	logg.Dlog.Debugf("get_range %v %v~%v", req.Path, req.Offset, req.Length)

	options := minio.GetObjectOptions{}
	if err := options.SetRange(req.Offset, req.Offset+int64(req.Length)-1); err != nil {
		return nil, err
	}

	r, _, _, err := p.minioClient.GetObject(
		context.Background(),
		p.conf.Bucket,
		p.key(req.Path),
		options,
	)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		// A range past the end of the object is end-of-data, not a failure.
		if errResp.Code == "InvalidRange" {
			return &ReadRangeReply{}, nil
		}
		if errResp.Code == "NoSuchKey" {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	defer r.Close()

	data := make([]byte, req.Length)
	n, err := io.ReadFull(r, data)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}

	p.objectReqsHistogram.WithLabelValues("READ").Observe(time.Since(st).Seconds())
	p.objectDataBytes.WithLabelValues("READ").Add(float64(n))

	return &ReadRangeReply{Data: data[:n]}, nil
}
