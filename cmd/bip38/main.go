package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/TheServat/bip38-crack/bip38"
	"github.com/TheServat/bip38-crack/internal/config"
	"github.com/TheServat/bip38-crack/internal/recovery"
	"github.com/TheServat/bip38-crack/internal/task"
	"github.com/docopt/docopt.go"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const usage = `bip38 - decrypt, encrypt and recover BIP-38 protected private keys.

Usage:
  bip38 decrypt <key> [--passphrase=<pass>] [--network=<name>]
  bip38 encrypt <wif> [--passphrase=<pass>] [--network=<name>]
  bip38 confirm <code> [--passphrase=<pass>] [--network=<name>]
  bip38 info <key>
  bip38 recover <key> [-t <threads>] [-c <charset>] [-l <len>] [-p <pat>] [-f <file>] [--chunk=<n> --chunks=<n>] [--resume=<n>] [--network=<name>] [--no-progress]
  bip38 -h | --help

Options:
  -h --help              Show this screen.
  --passphrase=<pass>    Passphrase; prompted for when omitted.
  --network=<name>       bitcoin, testnet, litecoin or dogecoin, overrides BIP38_NETWORK.
  -t <threads>           Number of worker goroutines, overrides BIP38_WORKERS.
  -c <charset>           Characters to try, printable ASCII when omitted.
  -l <len>               Passphrase length when no pattern is given.
  -p <pat>               Pattern, '?' marks an unknown character.
  -f <file>              Word list, one candidate per line.
  --chunk=<n>            Zero based chunk to search [default: 0].
  --chunks=<n>           Split the space into this many chunks [default: 1].
  --resume=<n>           Offset reported by an interrupted search [default: 0].
  --no-progress          Do not draw a progress bar.
`

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		fatalf("%v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		fatalf("%v", err)
	}
	log, err := cfg.NewLogger()
	if err != nil {
		fatalf("%v", err)
	}
	defer func() { _ = log.Sync() }()

	app := &app{opts: opts, cfg: cfg, log: log, out: os.Stdout, in: os.Stdin}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.run(ctx); err != nil {
		log.Error("command failed", zap.Error(err))
		stop()
		_ = log.Sync()
		os.Exit(exitCode(err))
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// exitCode lets scripts tell a wrong passphrase from broken input.
func exitCode(err error) int {
	var ie *recovery.InterruptedError
	switch {
	case bip38.IsBadPassphrase(err):
		return 2
	case errors.Is(err, recovery.ErrNotFound):
		return 3
	case errors.As(err, &ie), errors.Is(err, context.Canceled):
		return 130
	}
	return 1
}

type app struct {
	opts docopt.Opts
	cfg  *config.Config
	log  *zap.Logger
	out  io.Writer
	in   *os.File
}

func (a *app) run(ctx context.Context) error {
	switch {
	case a.flag("decrypt"):
		return a.decrypt(ctx)
	case a.flag("encrypt"):
		return a.encrypt()
	case a.flag("confirm"):
		return a.confirm()
	case a.flag("info"):
		return a.info()
	case a.flag("recover"):
		return a.search(ctx)
	}
	return errors.New("unknown command")
}

func (a *app) flag(key string) bool {
	v, _ := a.opts[key].(bool)
	return v
}

func (a *app) str(key string) string {
	v, _ := a.opts[key].(string)
	return v
}

func (a *app) uintOpt(key string) (uint64, error) {
	s := a.str(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func (a *app) network() (bip38.Network, error) {
	if name := a.str("--network"); name != "" {
		return bip38.NetworkByName(name)
	}
	return a.cfg.BIP38Network()
}

// passphrase returns --passphrase or asks for it without echo. Input that
// is not a terminal is read as a single line.
func (a *app) passphrase() (string, error) {
	if p, ok := a.opts["--passphrase"].(string); ok {
		return p, nil
	}
	fd := int(a.in.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(a.in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read passphrase: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Fprint(os.Stderr, "Passphrase: ")
	defer fmt.Fprintln(os.Stderr)
	raw, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	p := string(raw)
	clear(raw)
	return p, nil
}

// decryptResult collects the single outcome a DecodeTask delivers.
type decryptResult struct {
	key *bip38.DecryptedKey
	err error
}

func (r *decryptResult) OnSuccess(key *bip38.DecryptedKey) { r.key = key }

func (r *decryptResult) OnBadPassphrase() {
	r.err = fmt.Errorf("decrypt: %w", bip38.ErrBadPassphrase)
}

func (r *decryptResult) OnError(err error) { r.err = err }

// decrypt runs the slow scrypt step on a background pool so an interrupt
// returns right away instead of waiting for it to finish.
func (a *app) decrypt(ctx context.Context) error {
	net, err := a.network()
	if err != nil {
		return err
	}
	key, err := bip38.ParseKey(a.str("<key>"))
	if err != nil {
		return err
	}
	pass, err := a.passphrase()
	if err != nil {
		return err
	}

	pool, err := task.NewPool(1)
	if err != nil {
		return err
	}
	defer pool.Release()
	loop := task.NewLoop(1)
	res := &decryptResult{}

	a.log.Debug("decrypting", zap.Stringer("key_type", key.Variant()), zap.Stringer("network", net))
	if err := task.NewDecodeTask(pool, loop, res, bip38.WithNetwork(net)).Decode(key, pass); err != nil {
		return err
	}
	if !loop.RunOnce(ctx) {
		return ctx.Err()
	}
	if res.err != nil {
		return res.err
	}
	defer res.key.Zero()
	fmt.Fprintf(a.out, "Private key: %s\nAddress:     %s\n", res.key.WIF(), res.key.Address)
	return nil
}

func (a *app) encrypt() error {
	net, err := a.network()
	if err != nil {
		return err
	}
	priv, compressed, prefix, err := bip38.DecodeWIF(a.str("<wif>"))
	if err != nil {
		return err
	}
	defer clear(priv[:])
	if prefix != net.WIFPrefix {
		return fmt.Errorf("wif prefix %#x does not belong to %s", prefix, net)
	}
	pass, err := a.passphrase()
	if err != nil {
		return err
	}
	enc, err := bip38.Encrypt(priv, compressed, pass, bip38.WithNetwork(net))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, enc)
	return nil
}

func (a *app) confirm() error {
	net, err := a.network()
	if err != nil {
		return err
	}
	code, err := bip38.ParseConfirmationCode(a.str("<code>"))
	if err != nil {
		return err
	}
	pass, err := a.passphrase()
	if err != nil {
		return err
	}
	addr, err := code.Verify(pass, bip38.WithNetwork(net))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Confirmed address: %s\n", addr)
	return nil
}

func (a *app) info() error {
	key, err := bip38.ParseKey(a.str("<key>"))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "KeyType:     %s\nCompressed:  %t\nAddressHash: %x\n",
		key.Variant(), key.Compressed(), key.AddressHash)
	if lot, seq, ok := key.LotSequence(); ok {
		fmt.Fprintf(a.out, "Lot:         %d\nSequence:    %d\n", lot, seq)
	}
	return nil
}

func (a *app) search(ctx context.Context) error {
	net, err := a.network()
	if err != nil {
		return err
	}
	key, err := bip38.ParseKey(a.str("<key>"))
	if err != nil {
		return err
	}

	rc := recovery.Config{
		Workers:          a.cfg.WorkerCount(),
		Charset:          a.str("-c"),
		Pattern:          a.str("-p"),
		Network:          net,
		ProgressInterval: a.cfg.ProgressInterval,
		Logger:           a.log,
	}
	if t := a.str("-t"); t != "" {
		if rc.Workers, err = strconv.Atoi(t); err != nil {
			return fmt.Errorf("invalid -t: %w", err)
		}
	}
	if l := a.str("-l"); l != "" {
		if rc.Length, err = strconv.Atoi(l); err != nil {
			return fmt.Errorf("invalid -l: %w", err)
		}
	}
	if rc.Resume, err = a.uintOpt("--resume"); err != nil {
		return err
	}
	chunk, err := a.uintOpt("--chunk")
	if err != nil {
		return err
	}
	chunks, err := a.uintOpt("--chunks")
	if err != nil {
		return err
	}
	rc.Chunk, rc.Chunks = int(chunk), int(chunks)

	if path := a.str("-f"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open word list: %w", err)
		}
		defer f.Close()
		rc.Wordlist = f
	} else if rc.Charset == "" {
		rc.Charset = recovery.DefaultCharset
	}
	if a.cfg.Progress && !a.flag("--no-progress") && rc.Wordlist == nil {
		rc.ProgressBar = os.Stderr
	}

	s, err := recovery.New(key, rc)
	if err != nil {
		return err
	}
	res, err := s.Search(ctx)
	if err != nil {
		var ie *recovery.InterruptedError
		if errors.As(err, &ie) {
			fmt.Fprintf(a.out, "to resume, use offset %d\n", ie.Resume)
		}
		return err
	}
	defer res.Key.Zero()
	fmt.Fprintf(a.out, "%s    pass = '%s'   ( Address: %s )\n", res.Key.WIF(), res.Passphrase, res.Key.Address)
	return nil
}
