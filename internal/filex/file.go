package filex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var userConfigDir = os.UserConfigDir

// ErrNotImage is returned by ReadImage for content that does not sniff as
// an image.
var ErrNotImage = errors.New("not an image")

// EnsureDataDir returns <user config dir>/<appName>, creating it if needed.
func EnsureDataDir(appName string) (string, error) {
	base, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}

	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ReadImage reads at most maxBytes from path and returns the bytes with
// their sniffed content type.
func ReadImage(path string, maxBytes int64) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, "", fmt.Errorf("%s is larger than %d bytes", path, maxBytes)
	}

	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return nil, "", fmt.Errorf("%w: %s is %s", ErrNotImage, path, ct)
	}
	return data, ct, nil
}
