// Package pxshift rescales price fields in newline-delimited JSON market data.
//
// Every non-blank input line is one JSON record. Members named bid, ask,
// best_bid, best_ask, bid_price, ask_price, price, px or mid whose value is a
// number, or a string holding a decimal number, are multiplied by
// k = 1 + bps/10000 wherever they appear in the record. Everything else is
// re-emitted unchanged in compact form, one record per line, in input order.
//
// # Basic Usage
//
// Rescaling a local file by +25 basis points:
//
//	stats, err := pxshift.Run(ctx, "bbo.jsonl", "bbo.shifted.jsonl", 25)
//	if err != nil {
//	    var perr *rescale.ParseError
//	    if errors.As(err, &perr) {
//	        log.Fatalf("bad record on line %d", perr.Line)
//	    }
//	    log.Fatal(err)
//	}
//	fmt.Println(stats.Records, stats.DigestHex())
//
// Inputs and outputs may be compressed (.zst, .s2, .lz4, .gz) and may live in
// S3 (s3://bucket/key); see the storage package.
//
// # Package Structure
//
// Run glues the storage, compress and rescale packages for the common
// one-input, one-output case. Use rescale.Rescaler directly to process
// in-memory lines or arbitrary io.Reader/io.Writer pairs.
package pxshift

import (
	"context"
	"errors"

	"github.com/arloliu/pxshift/rescale"
	"github.com/arloliu/pxshift/storage"
)

type config struct {
	store       *storage.Store
	rescaleOpts []rescale.Option
}

// RunOption configures Run.
type RunOption func(*config)

// WithStore sets the store used to open the input and create the output.
// Default: storage.New().
func WithStore(store *storage.Store) RunOption {
	return func(c *config) {
		c.store = store
	}
}

// WithRescaleOptions passes options through to rescale.New.
func WithRescaleOptions(opts ...rescale.Option) RunOption {
	return func(c *config) {
		c.rescaleOpts = append(c.rescaleOpts, opts...)
	}
}

// Run rescales every record of input by bps basis points into output.
//
// The output appears at its location only if the whole input was processed;
// on any error it is discarded and an existing file at that path is left
// untouched. Input and output may name the same local file.
//
// Cancelling ctx stops the run between records and discards the output.
//
// Errors are *rescale.ParseError, *rescale.RescaleError or *rescale.IOError,
// wrap rescale.ErrInvalidFactor, or are ctx.Err(). The returned Stats cover
// the lines handled before a failure.
func Run(ctx context.Context, input, output string, bps float64, opts ...RunOption) (rescale.Stats, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.store == nil {
		cfg.store = storage.New()
	}

	r, err := rescale.New(bps, cfg.rescaleOpts...)
	if err != nil {
		return rescale.Stats{}, err
	}

	inLoc, err := storage.ParseLocation(input)
	if err != nil {
		return rescale.Stats{}, &rescale.IOError{Op: "open", Path: input, Err: err}
	}
	outLoc, err := storage.ParseLocation(output)
	if err != nil {
		return rescale.Stats{}, &rescale.IOError{Op: "create", Path: output, Err: err}
	}

	src, err := cfg.store.Open(ctx, inLoc)
	if err != nil {
		return rescale.Stats{}, &rescale.IOError{Op: "open", Path: input, Err: err}
	}
	defer src.Close()

	sink, err := cfg.store.Create(ctx, outLoc)
	if err != nil {
		return rescale.Stats{}, &rescale.IOError{Op: "create", Path: output, Err: err}
	}

	stats, err := r.StreamContext(ctx, src, sink)
	if err != nil {
		_ = sink.Abort(err)
		return stats, attachPath(err, input, output)
	}

	if err := sink.Commit(); err != nil {
		return stats, &rescale.IOError{Op: "commit", Path: output, Err: err}
	}

	return stats, nil
}

// attachPath names the stream an anonymous IOError from Stream refers to.
func attachPath(err error, input, output string) error {
	var ioErr *rescale.IOError
	if !errors.As(err, &ioErr) || ioErr.Path != "" {
		return err
	}

	switch ioErr.Op {
	case "read":
		ioErr.Path = input
	case "write":
		ioErr.Path = output
	}

	return err
}
