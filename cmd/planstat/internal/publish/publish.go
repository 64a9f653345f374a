// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package publish uploads rendered reports to Google Cloud Storage.
package publish

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// A Location is an object in a Cloud Storage bucket.
type Location struct {
	Bucket, Object string
}

func (l Location) String() string {
	return "gs://" + l.Bucket + "/" + l.Object
}

// ParseURL parses a gs://bucket/object URL. If the object ends in a
// slash or is empty, name is appended to it.
func ParseURL(url, name string) (Location, error) {
	rest, ok := strings.CutPrefix(url, "gs://")
	if !ok {
		return Location{}, fmt.Errorf("upload URL %q: want gs://bucket/object", url)
	}
	bucket, object, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("upload URL %q: missing bucket", url)
	}
	if object == "" || strings.HasSuffix(object, "/") {
		if name == "" {
			return Location{}, fmt.Errorf("upload URL %q: missing object name", url)
		}
		object += path.Base(name)
	}
	return Location{bucket, object}, nil
}

// An Uploader writes objects to Cloud Storage.
type Uploader struct {
	client *storage.Client
}

// NewUploader returns an Uploader authenticated with the service
// account key in credentialsFile, or with application default
// credentials if credentialsFile is empty.
func NewUploader(ctx context.Context, credentialsFile string) (*Uploader, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &Uploader{client}, nil
}

// Upload copies r to loc. The content type is derived from the
// object's extension.
func (u *Uploader) Upload(ctx context.Context, loc Location, r io.Reader) error {
	w := u.client.Bucket(loc.Bucket).Object(loc.Object).NewWriter(ctx)
	w.ContentType = ContentType(loc.Object)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("uploading %s: %w", loc, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("uploading %s: %w", loc, err)
	}
	return nil
}

// Close closes the underlying client.
func (u *Uploader) Close() error {
	return u.client.Close()
}

// ContentType returns the MIME type for the report file name.
func ContentType(name string) string {
	switch path.Ext(name) {
	case ".txt", "":
		return "text/plain; charset=utf-8"
	case ".csv":
		return "text/csv; charset=utf-8"
	}
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
