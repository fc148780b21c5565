// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/ashlight2510/pick/internal/catalog"
	"github.com/ashlight2510/pick/internal/logging"
)

// WriteDataset persists the dataset to every configured output path. The
// write is atomic per path: readers polling the file never observe a
// partially written dataset.
func WriteDataset(ds *catalog.Dataset, paths []string) error {
	payload, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	for _, path := range paths {
		if err := writeFileAtomic(path, payload); err != nil {
			return fmt.Errorf("write dataset to %s: %w", path, err)
		}
		logging.Info().Str("path", path).Int("titles", len(ds.Items)).Msg("dataset written")
	}
	return nil
}

func writeFileAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
