// Command pxshift rescales the price fields of a JSONL file by a number of
// basis points.
//
//	pxshift <input> <output> <bps>
//
// input and output are local paths or s3://bucket/key URLs; .zst, .s2, .lz4
// and .gz extensions select compression. Progress and errors are logged as
// JSON on stderr. The exit status is 0 on success, 1 on failure and 2 on a
// usage error.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/arloliu/pxshift"
	"github.com/arloliu/pxshift/rescale"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = "usage: pxshift <input> <output> <bps>"

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], logger, os.Stderr)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, logger *logrus.Logger, stderr io.Writer) int {
	if len(args) != 3 {
		fmt.Fprintln(stderr, usage)
		logger.WithField("args", len(args)).Error("expected exactly three arguments")

		return exitUsage
	}

	input, output := args[0], args[1]
	bps, err := rescale.ParseBasisPoints(args[2])
	if err == nil {
		_, err = rescale.Factor(bps)
	}
	if err != nil {
		fmt.Fprintln(stderr, usage)
		logger.WithError(err).WithField("bps", args[2]).Error("invalid basis points")

		return exitUsage
	}

	log := logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"input":  input,
		"output": output,
		"bps":    bps,
	})
	log.Info("rescale started")

	start := time.Now()
	stats, err := pxshift.Run(ctx, input, output, bps)
	fields := logrus.Fields{
		"lines":    stats.Lines,
		"records":  stats.Records,
		"blank":    stats.Blank,
		"rescaled": stats.Rescaled,
		"elapsed":  time.Since(start).String(),
	}

	if err != nil {
		var perr *rescale.ParseError
		var rerr *rescale.RescaleError
		switch {
		case errors.As(err, &perr):
			fields["line"] = perr.Line
		case errors.As(err, &rerr):
			fields["line"] = rerr.Line
			fields["key"] = rerr.Key
		}
		log.WithFields(fields).WithError(err).Error("rescale failed")

		return exitFailure
	}

	fields["bytes_in"] = stats.BytesIn
	fields["bytes_out"] = stats.BytesOut
	fields["digest"] = stats.DigestHex()
	log.WithFields(fields).Info("rescale finished")

	return exitOK
}
