// Package recovery searches for a forgotten BIP-38 passphrase, either over
// a charset/pattern space or over a word list, using all available cores.
package recovery

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/TheServat/bip38-crack/bip38"
	"go.uber.org/zap"
)

// DefaultCharset is every printable ASCII character.
const DefaultCharset = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// Wildcard marks an unknown position in a pattern.
const Wildcard = '?'

// ErrNotFound is returned when the whole space was tried without success.
var ErrNotFound = errors.New("passphrase not found")

// InterruptedError is returned when the search was cancelled. Resume is the
// offset to pass as Config.Resume to continue where it stopped.
type InterruptedError struct {
	Resume uint64
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("search interrupted, to resume use offset %d", e.Resume)
}

// Config describes a search. Either Wordlist or Charset with Pattern/Length
// must be set.
type Config struct {
	Workers int

	Charset string
	// Pattern holds the known characters of the passphrase; each Wildcard
	// is replaced by every character of Charset. If empty, Length
	// wildcards are used.
	Pattern string
	Length  int

	// Wordlist provides one candidate per line. Chunking is not available
	// for word lists.
	Wordlist io.Reader

	// Chunk and Chunks split the charset space between machines.
	Chunk  int
	Chunks int
	// Resume is the per-worker offset reported by InterruptedError for
	// charset searches and the number of lines to skip for word lists.
	Resume uint64

	Network bip38.Network

	ProgressInterval time.Duration
	// ProgressBar receives a progress bar for charset searches, nil
	// disables it.
	ProgressBar io.Writer

	Logger *zap.Logger
}

// Result is a found passphrase together with the decrypted key.
type Result struct {
	Passphrase string
	Key        *bip38.DecryptedKey
}

func (c *Config) validate() error {
	if c.Workers < 1 {
		return errors.New("workers must be >= 1")
	}
	if c.Wordlist != nil {
		return nil
	}
	if c.Chunks <= 0 || c.Chunk < 0 || c.Chunk >= c.Chunks {
		return fmt.Errorf("invalid chunk specification %d/%d", c.Chunk, c.Chunks)
	}
	if c.Charset == "" {
		return errors.New("empty charset")
	}
	if c.Pattern == "" && c.Length < 1 {
		return errors.New("password length must be >= 1 or a pattern or word list must be provided")
	}
	return nil
}

// pattern returns the pattern as runes with the Length default applied.
func (c *Config) pattern() []rune {
	if c.Pattern != "" {
		return []rune(c.Pattern)
	}
	pat := make([]rune, c.Length)
	for i := range pat {
		pat[i] = Wildcard
	}
	return pat
}

// spaceSize returns the number of candidates in a charset search. ok is
// false when it does not fit into uint64.
func spaceSize(charset, pat []rune) (size uint64, ok bool) {
	size = 1
	n := uint64(len(charset))
	for _, r := range pat {
		if r != Wildcard {
			continue
		}
		if size > math.MaxUint64/n {
			return 0, false
		}
		size *= n
	}
	return size, true
}

// candidate builds the i-th guess by reading i as a number in base
// len(charset), least significant digit first.
func candidate(i uint64, charset, pat, dst []rune) string {
	n := uint64(len(charset))
	for j, r := range pat {
		if r == Wildcard {
			dst[j] = charset[i%n]
			i /= n
		} else {
			dst[j] = r
		}
	}
	return string(dst)
}
