package compressor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// Ext is appended to an archived log's path.
const Ext = ".zst"

type Compressor struct {
	log *zap.Logger

	zstdEn *zstd.Encoder
}

func NewCompressor(log *zap.Logger) (*Compressor, error) {
	const op = "compressor.NewCompressor"

	zstdEn, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("%s: zstd encoder init: %w", op, err)
	}

	return &Compressor{
		log: log,

		zstdEn: zstdEn,
	}, nil
}

// Archive compresses the file at src into src+Ext, replacing any earlier
// archive. A missing or empty src is not an error. It reports whether an
// archive was written.
func (c *Compressor) Archive(src string) (bool, error) {
	const op = "compressor.Archive"

	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: read %s: %w", op, src, err)
	}
	if len(data) == 0 {
		c.log.Warn("Empty log, nothing to archive", zap.String("src", src))
		return false, nil
	}

	dst := src + Ext
	if err := os.WriteFile(dst, c.zstdEn.EncodeAll(data, nil), 0o644); err != nil {
		return false, fmt.Errorf("%s: write %s: %w", op, dst, err)
	}

	c.log.Info("Archived log", zap.String("src", src), zap.String("dst", dst), zap.Int("len", len(data)))

	return true, nil
}

func (c *Compressor) Close() {
	c.zstdEn.Close()
}
