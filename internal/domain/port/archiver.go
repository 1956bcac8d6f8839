package port

import "context"

// Archiver bundles the extracted frame images into a single archive file.
type Archiver interface {
	CreateZip(ctx context.Context, filePaths []string, outputPath string) error
}
