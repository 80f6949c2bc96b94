// Package storage holds the artifact stores for rendered images.
package storage

import (
	"context"
	"encoding/base64"
	"fmt"
)

// InlineStore keeps artifacts inside the report as data URIs
type InlineStore struct{}

// NewInlineStore creates an inline store
func NewInlineStore() *InlineStore {
	return &InlineStore{}
}

// Put returns data encoded as a data URI. The name is ignored.
func (InlineStore) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return DataURI(contentType, data), nil
}

// DataURI encodes data as a base64 data URI
func DataURI(contentType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}
