package oss

import (
	"context"
	"io"
	"os"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

var (
	AttachmentBucket *oss.Bucket

	GetObjectFunc    func(string, context.Context, ...oss.Option) (io.ReadCloser, error)
	PutObjectFunc    func(string, io.Reader, context.Context, ...oss.Option) error
	DeleteObjectFunc func(string, context.Context, ...oss.Option) error
)

func Bootstrap() {
	var err error
	AttachmentBucket, err = BuildBucketFromEnv()
	if err != nil {
		panic(err)
	}

	GetObjectFunc = GetObject
	PutObjectFunc = PutObject
	DeleteObjectFunc = DeleteObject
}

// BuildBucketFromEnv OSS_ENDPOINT, OSS_ACCESS_KEY, OSS_SECRET_KEY, OSS_BUCKET
func BuildBucketFromEnv() (*oss.Bucket, error) {
	endpoint := os.ExpandEnv(os.Getenv("OSS_ENDPOINT"))
	if endpoint == "" {
		endpoint = "dummy"
	}
	accessKey := os.Getenv("OSS_ACCESS_KEY")
	secretKey := os.Getenv("OSS_SECRET_KEY")
	bucket := os.Getenv("OSS_BUCKET")
	if bucket == "" {
		bucket = "beacon"
	}
	return BuildBucket(endpoint, accessKey, secretKey, bucket)
}

func BuildBucket(endpoint, accesskey, secretKey, bucketName string) (*oss.Bucket, error) {
	cli, err := oss.New(endpoint, accesskey, secretKey, oss.HTTPClient(nil))
	if err != nil {
		return nil, err
	}

	bucket, err := cli.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	return bucket, nil
}

func GetObject(key string, ctx context.Context, opts ...oss.Option) (io.ReadCloser, error) {
	childSpan := startChildSpan(ctx, "get-object", key)
	r, err := AttachmentBucket.GetObject(key, opts...)
	finishChildSpan(childSpan, err)
	return r, err
}

func PutObject(key string, r io.Reader, ctx context.Context, opts ...oss.Option) error {
	childSpan := startChildSpan(ctx, "put-object", key)
	err := AttachmentBucket.PutObject(key, r, opts...)
	finishChildSpan(childSpan, err)
	return err
}

func DeleteObject(key string, ctx context.Context, opts ...oss.Option) error {
	childSpan := startChildSpan(ctx, "delete-object", key)
	err := AttachmentBucket.DeleteObject(key, opts...)
	finishChildSpan(childSpan, err)
	return err
}

func startChildSpan(ctx context.Context, operation, key string) *opentracing.Span {
	if ctx == nil {
		return nil
	}
	parentSpan := opentracing.SpanFromContext(ctx)
	if parentSpan == nil {
		return nil
	}
	tracer := parentSpan.Tracer()
	sp := tracer.StartSpan(operation, opentracing.ChildOf(parentSpan.Context()))
	sp.SetTag("object-key", key)
	return &sp
}

func finishChildSpan(span *opentracing.Span, err error) {
	if span == nil {
		return
	}
	ext.Error.Set(*span, err != nil)
	(*span).Finish()
}
