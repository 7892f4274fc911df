package repositories

import "context"

// ScreenDescriber turns a captured screen into a spoken-friendly description.
type ScreenDescriber interface {
	DescribeImage(ctx context.Context, image []byte, mimeType string) (string, error)
}
