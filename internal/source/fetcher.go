// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package source fetches the table's dataset from a JSON endpoint.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/magpierre/dtb/datatable"
)

// Config describes where the dataset comes from.
type Config struct {
	// URL is fetched with a single GET.
	URL string
	// Field names the object member that holds the record array. Empty
	// means the document itself is the array.
	Field string
	// ListField is the field whose array values are joined into one string.
	ListField string
	// TransformScript is optional Go source run on each record; see
	// NewScriptTransform.
	TransformScript string
}

// Fetcher retrieves and decodes the dataset.
type Fetcher struct {
	cfg        Config
	client     *http.Client
	logger     *zap.Logger
	transforms []Transform
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTransform appends a record transform after the built-in ones.
func WithTransform(t Transform) Option {
	return func(f *Fetcher) {
		f.transforms = append(f.transforms, t)
	}
}

// NewFetcher builds a Fetcher. The list-joining transform always runs
// first; a transform script, if configured, is compiled here.
func NewFetcher(cfg Config, logger *zap.Logger, opts ...Option) (*Fetcher, error) {
	if cfg.URL == "" {
		return nil, errors.New("source URL is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Fetcher{
		cfg:    cfg,
		client: http.DefaultClient,
		logger: logger,
	}
	if cfg.ListField != "" {
		f.transforms = append(f.transforms, JoinList(cfg.ListField, ", "))
	}
	if cfg.TransformScript != "" {
		t, err := NewScriptTransform(cfg.TransformScript)
		if err != nil {
			return nil, err
		}
		f.transforms = append(f.transforms, t)
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch issues one GET and returns the decoded records. When the document
// does not have the configured shape (for example a bare array while Field
// is set) the mismatch is logged and an empty dataset is returned. There is
// no retry.
func (f *Fetcher) Fetch(ctx context.Context) ([]datatable.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", f.cfg.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", f.cfg.URL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return f.Decode(body)
}

// Decode turns a fetched document into records and runs the transforms.
func (f *Fetcher) Decode(doc []byte) ([]datatable.Record, error) {
	raw, err := extractArray(doc, f.cfg.Field)
	if errors.Is(err, ErrShapeMismatch) {
		f.logger.Warn("dataset shape mismatch, rendering empty table",
			zap.String("url", f.cfg.URL),
			zap.String("field", f.cfg.Field),
			zap.Error(err))
		return []datatable.Record{}, nil
	}
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}

	for i := range records {
		for _, t := range f.transforms {
			rec, err := t(records[i])
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			records[i] = rec
		}
	}

	f.logger.Debug("dataset decoded",
		zap.String("url", f.cfg.URL),
		zap.Int("records", len(records)))
	return records, nil
}
