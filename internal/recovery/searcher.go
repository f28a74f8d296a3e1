package recovery

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/TheServat/bip38-crack/bip38"
	"github.com/cheggaaa/pb"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultProgressInterval = 5 * time.Second

// errFound stops the remaining workers once one of them succeeds.
var errFound = errors.New("found")

// Searcher runs a passphrase search against a single key. A Searcher must
// not run two searches at the same time.
type Searcher struct {
	key   *bip38.EncryptedKey
	cfg   Config
	log   *zap.Logger
	tried *atomic.Uint64
}

// New validates cfg and prepares a search for key.
func New(key *bip38.EncryptedKey, cfg Config) (*Searcher, error) {
	if key == nil {
		return nil, errors.New("nil key")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Network.Name == "" {
		cfg.Network = bip38.Bitcoin
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = defaultProgressInterval
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{
		key:   key,
		cfg:   cfg,
		log:   log,
		tried: atomic.NewUint64(0),
	}, nil
}

// Tried returns the number of passphrases tried by the current or last
// search.
func (s *Searcher) Tried() uint64 {
	return s.tried.Load()
}

// Search runs until the passphrase is found, the space is exhausted
// (ErrNotFound) or ctx is cancelled (*InterruptedError).
func (s *Searcher) Search(ctx context.Context) (*Result, error) {
	s.tried.Store(0)
	s.log.Info("starting passphrase search",
		zap.Stringer("key_type", s.key.Variant()),
		zap.Stringer("network", s.cfg.Network),
		zap.Int("workers", s.cfg.Workers),
		zap.Bool("wordlist", s.cfg.Wordlist != nil),
	)
	if s.cfg.Wordlist != nil {
		return s.searchWordlist(ctx)
	}
	return s.searchSpace(ctx)
}

// try returns a nil Result for a wrong passphrase and an error only for
// failures that make further guessing pointless.
func (s *Searcher) try(guess string) (*Result, error) {
	d, err := s.key.Decrypt(guess, bip38.WithNetwork(s.cfg.Network))
	s.tried.Inc()
	switch {
	case err == nil:
		return &Result{Passphrase: guess, Key: d}, nil
	case bip38.IsBadPassphrase(err):
		return nil, nil
	default:
		return nil, err
	}
}

func (s *Searcher) searchSpace(ctx context.Context) (*Result, error) {
	charset := []rune(s.cfg.Charset)
	pat := s.cfg.pattern()
	space, ok := spaceSize(charset, pat)
	if !ok {
		return nil, errors.New("passphrase space does not fit into 64 bits")
	}

	chunks := uint64(s.cfg.Chunks)
	chunkSize := space / chunks
	startFrom := chunkSize * uint64(s.cfg.Chunk)
	endAt := startFrom + chunkSize
	if s.cfg.Chunk == s.cfg.Chunks-1 {
		endAt = space
	}
	total := endAt - startFrom
	workers := uint64(s.cfg.Workers)
	blockSize := total / workers

	s.log.Info("charset search",
		zap.Int("charset_size", len(charset)),
		zap.String("pattern", string(pat)),
		zap.Uint64("space_size", space),
		zap.Uint64("chunk_start", startFrom),
		zap.Uint64("chunk_size", total),
		zap.Uint64("resume", s.cfg.Resume),
	)

	left := remaining(total, workers, s.cfg.Resume)
	bar := s.startBar(left)
	stop := s.reportProgress(ctx, left)

	found := make(chan *Result, 1)
	done := make([]*atomic.Uint64, workers)
	finishes := make([]uint64, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := uint64(0); w < workers; w++ {
		start := startFrom + w*blockSize
		finish := start + blockSize
		if w == workers-1 {
			finish = endAt
		}
		progress := atomic.NewUint64(s.cfg.Resume)
		done[w], finishes[w] = progress, finish

		g.Go(func() error {
			guess := make([]rune, len(pat))
			for {
				i := start + progress.Load()
				if i >= finish || gctx.Err() != nil {
					return nil
				}
				res, err := s.try(candidate(i, charset, pat, guess))
				if err != nil {
					return err
				}
				progress.Inc()
				if bar != nil {
					bar.Increment()
				}
				if res != nil {
					select {
					case found <- res:
					default:
					}
					return errFound
				}
			}
		})
	}
	err := g.Wait()
	stop()
	if bar != nil {
		bar.Finish()
	}

	if res, ok := s.result(found); ok {
		return res, nil
	}
	if err != nil && !errors.Is(err, errFound) {
		return nil, err
	}
	if ctx.Err() != nil {
		// the smallest offset any unfinished worker reached
		resume := uint64(math.MaxUint64)
		for w := range done {
			start := startFrom + uint64(w)*blockSize
			if off := done[w].Load(); start+off < finishes[w] && off < resume {
				resume = off
			}
		}
		if resume != math.MaxUint64 {
			return nil, &InterruptedError{Resume: resume}
		}
	}
	return nil, ErrNotFound
}

// remaining returns how many candidates of a chunk of size total are left
// when each of the workers skips the first resume candidates of its block.
func remaining(total, workers, resume uint64) uint64 {
	blockSize := total / workers
	var left uint64
	for w := uint64(0); w < workers; w++ {
		size := blockSize
		if w == workers-1 {
			size = total - w*blockSize
		}
		if resume < size {
			left += size - resume
		}
	}
	return left
}

func (s *Searcher) searchWordlist(ctx context.Context) (*Result, error) {
	stop := s.reportProgress(ctx, 0)

	lines := make(chan string, s.cfg.Workers*100)
	found := make(chan *Result, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(s.cfg.Wordlist)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for i := uint64(0); scanner.Scan(); i++ {
			if i < s.cfg.Resume {
				continue
			}
			select {
			case lines <- scanner.Text():
			case <-gctx.Done():
				return nil
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read word list: %w", err)
		}
		return nil
	})
	for w := 0; w < s.cfg.Workers; w++ {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case guess, ok := <-lines:
					if !ok {
						return nil
					}
					res, err := s.try(guess)
					if err != nil {
						return err
					}
					if res != nil {
						select {
						case found <- res:
						default:
						}
						return errFound
					}
				}
			}
		})
	}
	err := g.Wait()
	stop()

	if res, ok := s.result(found); ok {
		return res, nil
	}
	if err != nil && !errors.Is(err, errFound) {
		return nil, err
	}
	if ctx.Err() != nil {
		// every line handed to a worker has been tried, so the tried lines
		// form a prefix of the list
		return nil, &InterruptedError{Resume: s.cfg.Resume + s.tried.Load()}
	}
	return nil, ErrNotFound
}

func (s *Searcher) result(found <-chan *Result) (*Result, bool) {
	select {
	case res := <-found:
		s.log.Info("passphrase found",
			zap.String("address", res.Key.Address),
			zap.Uint64("tried", s.tried.Load()),
		)
		return res, true
	default:
		return nil, false
	}
}

func (s *Searcher) startBar(total uint64) *pb.ProgressBar {
	if s.cfg.ProgressBar == nil {
		return nil
	}
	if total > math.MaxInt64 {
		total = math.MaxInt64
	}
	bar := pb.New64(int64(total))
	bar.Output = s.cfg.ProgressBar
	bar.ShowSpeed = true
	bar.Start()
	return bar
}

// reportProgress logs throughput every ProgressInterval until the returned
// function is called. total is zero when the size of the search is unknown.
func (s *Searcher) reportProgress(ctx context.Context, total uint64) func() {
	ctx, cancel := context.WithCancel(ctx)
	exited := make(chan struct{})
	start := time.Now()
	go func() {
		defer close(exited)
		t := time.NewTicker(s.cfg.ProgressInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			tried := s.tried.Load()
			elapsed := time.Since(start)
			rate := float64(tried) / elapsed.Seconds()
			fields := []zap.Field{
				zap.Uint64("tried", tried),
				zap.Float64("per_second", rate),
				zap.Float64("per_second_per_worker", rate/float64(s.cfg.Workers)),
				zap.Duration("elapsed", elapsed.Truncate(time.Second)),
			}
			if total > tried && rate > 0 {
				eta := time.Duration(float64(total-tried) / rate * float64(time.Second))
				fields = append(fields,
					zap.Uint64("remaining", total-tried),
					zap.Duration("eta", eta.Truncate(time.Second)),
				)
			}
			s.log.Info("search progress", fields...)
		}
	}()
	return func() {
		cancel()
		<-exited
	}
}
