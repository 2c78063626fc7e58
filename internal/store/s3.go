// SPDX-License-Identifier: Apache-2.0

// Package store retrieves MOS message files from S3-compatible object
// storage.
package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/bbc/mosromgr-sub000/internal/log"
)

var logger = log.WithComponent("store")

// API is the subset of the S3 client the store needs.
type API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Client lists and fetches objects from a single bucket.
type Client struct {
	api    API
	bucket string
}

// New builds a client using the ambient AWS credential chain.
func New(ctx context.Context, bucket string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithAPI(s3.NewFromConfig(cfg), bucket), nil
}

// NewWithAPI builds a client around an existing S3 API, mainly for tests.
func NewWithAPI(api API, bucket string) *Client {
	return &Client{api: api, bucket: bucket}
}

// List returns the keys under prefix ending in suffix, in the lexical order
// S3 returns them. An empty suffix matches every key.
func (c *Client) List(ctx context.Context, prefix, suffix string) ([]string, error) {
	logger.Debug().
		Str(log.FieldBucket, c.bucket).
		Str(log.FieldPrefix, prefix).
		Msg("listing objects")
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
		Bucket: &c.bucket,
		Prefix: &prefix,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", c.bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			if suffix == "" || strings.HasSuffix(*obj.Key, suffix) {
				keys = append(keys, *obj.Key)
			}
		}
	}
	logger.Info().
		Str(log.FieldBucket, c.bucket).
		Str(log.FieldPrefix, prefix).
		Int(log.FieldCount, len(keys)).
		Msg("listed objects")
	return keys, nil
}

// Fetch downloads one object's content.
func (c *Client) Fetch(ctx context.Context, key string) ([]byte, error) {
	logger.Debug().Str(log.FieldBucket, c.bucket).Str(log.FieldKey, key).Msg("fetching object")
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", c.bucket, key, err)
	}
	defer out.Body.Close()
	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", c.bucket, key, err)
	}
	return b, nil
}
