// Copyright 2024 Pulse Data Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

// Package s3 implements the pipeline's object storage boundary on top of S3:
// snapshot writes for the extractors, a pulse.RawSource over a key prefix for
// the transform's reads, and prefix deletion for the transform's overwrite
// semantics.
package s3

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"

	"github.com/pulsedata/pulse"
)

// Store reads and writes objects in one S3 bucket.
type Store struct {
	s3     *s3.S3
	bucket string
}

// NewStore creates a Store for the given region and bucket using the default
// AWS credential chain.
func NewStore(region, bucket string) (*Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, errors.Wrap(err, "getting AWS session")
	}
	return &Store{s3: s3.New(sess), bucket: bucket}, nil
}

// Put writes one object. Each extractor invocation calls this exactly once,
// with a timestamp-keyed name, so prior snapshots are never overwritten.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	return errors.Wrapf(err, "putting %v", key)
}

// DeletePrefix removes every object under prefix. The transform deletes a
// table's prefix immediately before writing the new table, which is what
// gives output tables their full-overwrite semantics. There is no
// transactionality here: a failure partway through leaves the prefix half
// emptied.
func (s *Store) DeletePrefix(ctx context.Context, prefix string) error {
	keys, err := s.list(ctx, prefix)
	if err != nil {
		return errors.Wrap(err, "listing prefix")
	}
	for _, key := range keys {
		_, err := s.s3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return errors.Wrapf(err, "deleting %v", key)
		}
	}
	return nil
}

// RawSource returns a pulse.RawSource over all objects under prefix. The
// object listing is taken once, up front; snapshots landed while the source
// is being consumed are not picked up.
func (s *Store) RawSource(ctx context.Context, prefix string) (pulse.RawSource, error) {
	keys, err := s.list(ctx, prefix)
	if err != nil {
		return nil, errors.Wrap(err, "listing prefix")
	}
	return &RawSource{ctx: ctx, store: s, keys: keys}, nil
}

func (s *Store) list(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.s3.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range page.Contents {
			keys = append(keys, *obj.Key)
		}
		return true
	})
	if err != nil {
		return nil, errors.Wrapf(err, "listing objects under %v", prefix)
	}
	return keys, nil
}

// RawSource is a pulse.RawSource which streams the objects under an S3
// prefix one at a time.
type RawSource struct {
	ctx   context.Context
	store *Store
	keys  []string
	idx   int
}

// NextReader fetches the next object, or returns io.EOF once every listed
// key has been read.
func (rs *RawSource) NextReader() (pulse.NamedReadCloser, error) {
	if rs.idx >= len(rs.keys) {
		return nil, io.EOF
	}
	key := rs.keys[rs.idx]
	rs.idx++

	result, err := rs.store.s3.GetObjectWithContext(rs.ctx, &s3.GetObjectInput{
		Bucket: aws.String(rs.store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %v", key)
	}
	return &objReader{name: key, body: result.Body}, nil
}

type objReader struct {
	name string
	body io.ReadCloser
}

func (o *objReader) Read(buf []byte) (n int, err error) {
	return o.body.Read(buf)
}

func (o *objReader) Close() error {
	return o.body.Close()
}

func (o *objReader) Name() string {
	return o.name
}
