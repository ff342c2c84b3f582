package report

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const zstExt = ".zst"

// ProgressPath derives the snapshot sidecar for an output path:
// results.json becomes results_progress.json.
func ProgressPath(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_progress" + ext
}

// WriteOutput writes report data to path, zstd-compressing it when the path
// ends in .zst.
func WriteOutput(path string, data []byte) error {
	if !strings.HasSuffix(path, zstExt) {
		return os.WriteFile(path, data, 0644)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
