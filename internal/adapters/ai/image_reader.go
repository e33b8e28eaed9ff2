package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var _ domain.ImageReader = (*FileImageReader)(nil)

// MaxImageBytes bounds the size of an image sent to the provider.
const MaxImageBytes = 10 << 20

var ErrImageTooLarge = errors.New("image exceeds the 10 MiB limit")

// FileImageReader reads images from the local filesystem. URIs may be plain
// paths or file:// URLs.
type FileImageReader struct{}

func (FileImageReader) ReadBase64(ctx context.Context, uri string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := strings.TrimPrefix(uri, "file://")

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if info.Size() > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
