package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the subset of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader writes documents to a bucket under a key prefix.
type S3Uploader struct {
	client PutObjectAPI
	bucket string
	region string
	prefix string
}

func NewS3Uploader(client PutObjectAPI, bucket, region, prefix string) *S3Uploader {
	return &S3Uploader{
		client: client,
		bucket: bucket,
		region: region,
		prefix: prefix,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, files []File) ([]string, error) {
	files = withNames(files)
	urls := make([]string, 0, len(files))
	for _, f := range files {
		key := ObjectKey(u.prefix, f.Name)
		input := &s3.PutObjectInput{
			Bucket: aws.String(u.bucket),
			Key:    aws.String(key),
			Body:   f.Body,
		}
		if f.ContentType != "" {
			input.ContentType = aws.String(f.ContentType)
		}
		if f.Size > 0 {
			input.ContentLength = aws.Int64(f.Size)
		}
		if _, err := u.client.PutObject(ctx, input); err != nil {
			return urls, fmt.Errorf("put %s: %w", key, err)
		}
		urls = append(urls, PublicURL(u.bucket, u.region, key))
	}
	return urls, nil
}

// PublicURL is the virtual-hosted style URL of key. us-east-1 uses the
// legacy global endpoint.
func PublicURL(bucket, region, key string) string {
	if region == "" || region == "us-east-1" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}
