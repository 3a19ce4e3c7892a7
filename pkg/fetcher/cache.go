package fetcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"

	"github.com/amosWeiskopf/pagewords/pkg/utils"
)

// Cache stores fetched pages on disk, one entry per source. Entries are
// named by a hash of the normalized source so different sources never share
// a file.
type Cache struct {
	fs  afero.Fs
	dir string
}

// NewCache creates a cache rooted at dir on fs
func NewCache(fs afero.Fs, dir string) *Cache {
	return &Cache{fs: fs, dir: dir}
}

// Key returns the entry file name for source
func (c *Cache) Key(source string) string {
	return fmt.Sprintf("%016x.html", xxhash.Sum64String(utils.NormalizeURL(source)))
}

// Path returns the full entry path for source
func (c *Cache) Path(source string) string {
	return filepath.Join(c.dir, c.Key(source))
}

// Get returns the cached content for source. The boolean is false when no
// entry exists.
func (c *Cache) Get(source string) (string, bool, error) {
	f, err := c.fs.Open(c.Path(source))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("open cache entry: %w", err)
	}
	defer f.Close()

	content, err := readLines(f)
	if err != nil {
		return "", false, fmt.Errorf("read cache entry: %w", err)
	}
	return content, true, nil
}

// Put stores content for source. The entry is written to a temporary file
// and renamed into place.
func (c *Cache) Put(source, content string) error {
	if err := c.fs.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := afero.TempFile(c.fs, c.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp entry: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.WriteString(tmp, content); err != nil {
		tmp.Close()
		c.fs.Remove(tmpName)
		return fmt.Errorf("write temp entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		c.fs.Remove(tmpName)
		return fmt.Errorf("close temp entry: %w", err)
	}
	if err := c.fs.Rename(tmpName, c.Path(source)); err != nil {
		c.fs.Remove(tmpName)
		return fmt.Errorf("rename entry: %w", err)
	}
	return nil
}

// lineEndings maps CRLF and lone CR line terminators to LF
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// readLines reads r line by line and joins the lines with "\n", ending every
// line (including a final unterminated one) with a newline. LF, CRLF and a
// lone CR all terminate a line.
func readLines(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	content := lineEndings.Replace(string(raw))
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content, nil
}
