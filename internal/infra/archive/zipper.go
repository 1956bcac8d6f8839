package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer bundles frame images into a zip archive. Entries keep the
// caller's order, which for frames is extraction order.
type Writer struct {
	comment string
}

func NewWriter() *Writer {
	return &Writer{comment: "frame-dump frame archive"}
}

func (w *Writer) CreateZip(ctx context.Context, filePaths []string, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create zip file: %w", err)
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)
	defer zw.Close()

	if err := zw.SetComment(w.comment); err != nil {
		return fmt.Errorf("set zip comment: %w", err)
	}

	for _, fp := range filePaths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := addFile(zw, fp); err != nil {
			return fmt.Errorf("add %s to zip: %w", fp, err)
		}
	}

	return nil
}

func addFile(zw *zip.Writer, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.Base(filename)
	header.Method = zip.Deflate
	// UTC timestamps keep the archive bytes independent of the host zone.
	header.Modified = info.ModTime().UTC()

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(dst, file)
	return err
}
