// Package rescale shifts price fields of JSONL market events by a basis-point factor.
//
// Every non-blank input line is one JSON document. The rescaler walks the
// whole document, and wherever an object member is named like a price
// (bid, ask, best_bid, best_ask, bid_price, ask_price, price, px, mid) and holds
// a number or a decimal string, the value is replaced by value*k with
//
//	k = 1 + bps/10000
//
// Everything else is copied through: key order, non-price numbers (byte for
// byte), strings, nesting. Records are written back compact, one per line, in
// input order.
//
// # Usage
//
//	r, err := rescale.New(25) // +25 bps, k = 1.0025
//	if err != nil {
//	    return err
//	}
//	stats, err := r.Stream(in, out)
//	if err != nil {
//	    // output is incomplete and must be discarded
//	    return err
//	}
//	fmt.Println(stats.Records, stats.Rescaled, stats.DigestHex())
//
// # Selection Rules
//
//   - Selection is by the immediate member name only, case-sensitive.
//   - A price-named member holding an object or array is not rescaled; the
//     walk descends into it instead.
//   - Members with other names are never rescaled, but their children are
//     still inspected at any depth.
//   - Decimal strings ("101.25") are converted to JSON numbers on output.
//
// # Errors
//
// The run is fail-fast. Malformed JSON yields *ParseError with the 1-based
// line number, reader and writer failures yield *IOError, and a rescaled
// value that overflows float64 yields *RescaleError wrapping ErrNonFinite.
//
// # Thread Safety
//
// A Rescaler is immutable after New and may be shared. Each Stream call
// must own its reader and writer.
package rescale
