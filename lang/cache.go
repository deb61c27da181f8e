package lang

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// translations stores generated texts keyed by (source_hash^target_hash).
var translations sync.Map

// translation tracks the one-time compilation of a source for a target.
type translation struct {
	once  sync.Once
	texts []string
	err   error
}

// cacheKey combines the hash of the source with the hash of the target name
// so the same source compiled for different targets is cached separately.
func cacheKey(t *Target, src string) (string, uint64) {
	sourceHash := xxh3.HashString(src)

	return strconv.FormatUint(sourceHash^xxh3.HashString(t.Name), 36), sourceHash
}

// translateCached returns the cached translation of src, compiling it on
// first use. Errors are cached too.
func (c *Compiler) translateCached(ctx context.Context, src string) ([]string, error) {
	key, sourceHash := cacheKey(c.target, src)

	value, hit := translations.LoadOrStore(key, new(translation))

	entry, ok := value.(*translation)
	if !ok {
		return c.translate(ctx, src)
	}

	c.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("target", c.target.Name),
		slog.Bool("cache_hit", hit))

	entry.once.Do(func() {
		entry.texts, entry.err = c.translate(ctx, src)
	})

	if entry.err != nil {
		return nil, entry.err
	}

	return slices.Clone(entry.texts), nil
}

// ClearCache removes all cached translations.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	translations.Clear()
}
