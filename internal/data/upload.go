package data

import (
	"bytes"

	"geothermal-load/internal/load"
)

// UploadReader reads load columns from an uploaded file held in memory. Parsed columns
// are shared through Cache, keyed by content, layout and columns.
type UploadReader struct {
	Content []byte
	Cache   *ProfileCache

	// Hit reports whether the last read was served from the cache.
	Hit bool
}

var _ load.ProfileReader = (*UploadReader)(nil)

// ReadColumns ignores source; it only labels the upload in errors and logs.
func (u *UploadReader) ReadColumns(source string, format load.ProfileFormat, columns ...int) ([][]float64, error) {
	key := CacheKey(u.Content, format, columns...)
	if cols, ok := u.Cache.Get(key); ok {
		u.Hit = true
		return cols, nil
	}
	u.Hit = false
	cols, err := ReadColumnsFrom(bytes.NewReader(u.Content), format, columns...)
	if err != nil {
		return nil, err
	}
	u.Cache.Set(key, cols)
	return cols, nil
}
