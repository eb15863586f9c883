package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/moriyoshi/rill"
	"github.com/moriyoshi/rill/internal/logging"
	"github.com/moriyoshi/rill/iodev"
	"github.com/moriyoshi/rill/tee"
)

const defaultChunkSize = 4096

type CLI struct {
	Files     []string   `arg:"" optional:"" name:"file" help:"Files to copy standard input to."`
	Append    bool       `name:"append" short:"a" help:"Append to the files instead of truncating them." env:"RILLTEE_APPEND"`
	Quiet     bool       `name:"quiet" short:"q" help:"Do not copy to standard output." env:"RILLTEE_QUIET"`
	Policy    string     `name:"policy" help:"How outputs are kept in step: bulk or checked. Defaults to the config file, then bulk." env:"RILLTEE_POLICY" optional:""`
	ChunkSize int        `name:"chunk-size" help:"Bytes read from standard input at a time." env:"RILLTEE_CHUNK_SIZE" optional:""`
	Config    string     `name:"config" help:"Path to a YAML file listing further outputs." env:"RILLTEE_CONFIG" optional:""`
	LogLevel  slog.Level `name:"log-level" help:"Log level." env:"RILLTEE_LOG_LEVEL" default:"WARN" enum:"DEBUG,INFO,WARN,ERROR"`
}

// settings is the CLI merged with the config file.
type settings struct {
	policy    tee.Policy
	chunkSize int
	stdout    bool
	outputs   []Output
}

func (CLI *CLI) initLogger(*kong.Context) *slog.Logger {
	return logging.New(CLI.LogLevel)
}

func (CLI *CLI) resolve() (*settings, error) {
	cfg := &Config{}
	if CLI.Config != "" {
		var err error
		cfg, err = LoadConfigFile(CLI.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	s := &settings{
		chunkSize: defaultChunkSize,
		stdout:    !CLI.Quiet,
	}
	policy := "bulk"
	if CLI.Policy != "" {
		policy = CLI.Policy
	} else if cfg.Policy != "" {
		policy = cfg.Policy
	}
	var err error
	s.policy, err = tee.ParsePolicy(policy)
	if err != nil {
		return nil, err
	}
	if CLI.ChunkSize > 0 {
		s.chunkSize = CLI.ChunkSize
	} else if cfg.ChunkSize > 0 {
		s.chunkSize = cfg.ChunkSize
	}
	for _, f := range CLI.Files {
		s.outputs = append(s.outputs, Output{Path: f, Append: CLI.Append})
	}
	s.outputs = append(s.outputs, cfg.Outputs...)
	return s, nil
}

func (s *settings) openOutputs(logger *slog.Logger) (*outputSet, error) {
	set := &outputSet{logger: logger}
	if s.stdout {
		if err := set.addStdout(); err != nil {
			return nil, err
		}
	}
	for _, o := range s.outputs {
		if err := set.addFile(o); err != nil {
			return nil, multierror.Append(err, set.close()).ErrorOrNil()
		}
		logger.Info("output opened", slog.String("path", o.Path), slog.Bool("append", o.Append))
	}
	return set, nil
}

// newPump connects the input built by openInput to the outputs in set.
// The outputs are closed again if that fails.
func (s *settings) newPump(logger *slog.Logger, set *outputSet, openInput func() (iodev.Reader, error)) (p *pump, err error) {
	defer func() {
		if err != nil {
			err = multierror.Append(err, set.close()).ErrorOrNil()
		}
	}()
	in, err := rill.NewSource[byte, iodev.Reader](rill.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err = in.Open(openInput); err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	out, err := rill.NewSink[byte, tee.Tee[byte]](rill.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err = out.OpenValue(*set.tee(s.policy)); err != nil {
		return nil, err
	}
	return &pump{in: in, out: out, chunk: s.chunkSize, logger: logger}, nil
}

func openStdin() (iodev.Reader, error) {
	return iodev.NewReader(os.Stdin), nil
}

// watchSignals cancels the copy on the first SIGINT and exits on the
// second. It returns once ctx is done.
func watchSignals(ctx context.Context, cancel context.CancelFunc, kongCtx *kong.Context) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT)
	defer signal.Stop(sigChan)
	count := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sigChan:
			count += 1
			if count == 1 {
				kongCtx.Printf("Received SIGINT, stopping after the current chunk...")
				cancel()
			} else {
				kongCtx.Printf("Received SIGINT again, exiting...")
				kongCtx.Exit(130)
			}
		}
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()
	var CLI CLI
	kongCtx := kong.Parse(&CLI, kong.Description("Copy standard input to standard output and files, keeping the outputs in step."))
	logger := CLI.initLogger(kongCtx)
	s, err := CLI.resolve()
	kongCtx.FatalIfErrorf(err)
	set, err := s.openOutputs(logger)
	kongCtx.FatalIfErrorf(err)
	p, err := s.newPump(logger, set, openStdin)
	kongCtx.FatalIfErrorf(err)

	var total int64
	copyCtx, stop := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(copyCtx)
	g.Go(func() error {
		defer stop()
		var err error
		total, err = p.run(gctx)
		return err
	})
	g.Go(func() error {
		return watchSignals(gctx, stop, kongCtx)
	})
	err = g.Wait()
	logger.Info("copy finished", slog.Int64("bytes", total), slog.String("policy", s.policy.String()))
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		set.reportErrors()
	}
	kongCtx.FatalIfErrorf(multierror.Append(err, set.close()).ErrorOrNil())
}
