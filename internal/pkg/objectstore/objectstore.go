// Package objectstore uploads backup artifacts to an S3-compatible bucket.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Options describes the bucket and credentials.
type Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
	PathStyle       bool
}

// Putter is the subset of the S3 API the uploader needs.
type Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client puts objects under a key prefix in one bucket.
type Client struct {
	api    Putter
	bucket string
	prefix string
}

// New builds a client with static credentials. A custom endpoint (MinIO, R2,
// Ceph) switches to path-style addressing.
func New(opts Options) (*Client, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	region := strings.TrimSpace(opts.Region)
	accessKey := strings.TrimSpace(opts.AccessKeyID)
	secretKey := strings.TrimSpace(opts.SecretAccessKey)
	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, errors.New("incomplete s3 config: bucket/region/access_key_id/secret_access_key are required")
	}

	s3Opts := s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: opts.PathStyle,
	}
	if endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/"); endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		s3Opts.BaseEndpoint = aws.String(endpoint)
		s3Opts.UsePathStyle = true
	}

	return NewWithAPI(s3.New(s3Opts), bucket, opts.Prefix), nil
}

// NewWithAPI wraps an existing S3 API implementation.
func NewWithAPI(api Putter, bucket, prefix string) *Client {
	return &Client{
		api:    api,
		bucket: bucket,
		prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
	}
}

// Key joins name under the configured prefix.
func (c *Client) Key(name string) string {
	name = strings.TrimLeft(name, "/")
	if c.prefix == "" {
		return name
	}
	return path.Join(c.prefix, name)
}

// Put uploads payload and returns the object key it was stored under.
func (c *Client) Put(ctx context.Context, name, contentType string, payload []byte) (string, error) {
	key := c.Key(name)
	if key == "" {
		return "", errors.New("invalid s3 object key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(payload),
		ContentLength: aws.Int64(int64(len(payload))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}
	return key, nil
}

// Bucket returns the target bucket name.
func (c *Client) Bucket() string { return c.bucket }
