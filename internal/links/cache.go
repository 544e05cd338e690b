package links

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
)

// CachingProber wraps another prober with a gzip-compressed disk cache.
// Listing reviews re-run the same checklist against the same issue many
// times; caching probe outcomes keeps repeated updates from re-hitting
// every documentation and license URL.
type CachingProber struct {
	Next Prober
	Dir  string
	TTL  time.Duration

	mu sync.Mutex
}

// DefaultTTL is how long a cached probe outcome stays valid.
const DefaultTTL = 24 * time.Hour

// cacheEntry is the on-disk representation of a cached outcome.
type cacheEntry struct {
	Outcome  Outcome   `json:"outcome"`
	ProbedAt time.Time `json:"probedAt"`
}

// NewCachingProber wraps next with a cache rooted at dir.
func NewCachingProber(next Prober, dir string) *CachingProber {
	return &CachingProber{Next: next, Dir: dir, TTL: DefaultTTL}
}

func (c *CachingProber) Probe(ctx context.Context, url string) Outcome {
	if out, ok := c.get(url); ok {
		return out
	}
	out := c.Next.Probe(ctx, url)
	// Only cache definitive answers; transport errors should be retried
	// on the next run.
	if out.Error == "" {
		c.put(url, out)
	}
	return out
}

func (c *CachingProber) get(url string) (Outcome, bool) {
	if c.Dir == "" {
		return Outcome{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(c.cachePath(url))
	if err != nil {
		return Outcome{}, false
	}
	defer f.Close() //nolint:errcheck

	zr, err := gzip.NewReader(f)
	if err != nil {
		return Outcome{}, false
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		return Outcome{}, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Invalid cache entry, treat as miss.
		return Outcome{}, false
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if time.Since(entry.ProbedAt) > ttl {
		return Outcome{}, false
	}
	return entry.Outcome, true
}

func (c *CachingProber) put(url string, out Outcome) {
	if c.Dir == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return
	}
	data, err := json.Marshal(cacheEntry{Outcome: out, ProbedAt: time.Now().UTC()})
	if err != nil {
		return
	}

	f, err := os.Create(c.cachePath(url))
	if err != nil {
		return
	}
	zw := gzip.NewWriter(f)
	_, werr := zw.Write(data)
	cerr := zw.Close()
	ferr := f.Close()
	if werr != nil || cerr != nil || ferr != nil {
		os.Remove(c.cachePath(url)) //nolint:errcheck
	}
}

func (c *CachingProber) cachePath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.Dir, hex.EncodeToString(sum[:])+".json.gz")
}
