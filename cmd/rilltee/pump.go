package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/moriyoshi/rill"
	"github.com/moriyoshi/rill/internal/bufio"
	"github.com/moriyoshi/rill/iodev"
	"github.com/moriyoshi/rill/tee"
)

// pump copies the input to the tee a chunk at a time.
type pump struct {
	in     *rill.Direct[byte, iodev.Reader]
	out    *rill.Direct[byte, tee.Tee[byte]]
	chunk  int
	logger *slog.Logger
}

// run copies until the input is exhausted, an output falls behind, or ctx
// is cancelled. The context is only looked at between chunks.
func (p *pump) run(ctx context.Context) (int64, error) {
	r := bufio.NewReader(p.in)
	w := bufio.NewWriter(p.out)
	buf := make([]byte, p.chunk)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := r.Read(buf)
		if errors.Is(err, io.EOF) {
			return total, p.in.Device().Err()
		}
		m, err := w.Write(buf[:n])
		total += int64(m)
		p.logger.Debug("chunk copied", slog.Int("read", n), slog.Int("written", m))
		if err != nil {
			return total, fmt.Errorf("outputs agreed on %d bytes, %d more were read: %w", total, n-m, err)
		}
	}
}
