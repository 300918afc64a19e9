// Package storage opens rescaler inputs and outputs on the local filesystem
// or in S3.
//
// A location is either a filesystem path or an s3://bucket/key URL. The
// compression of the stream is taken from the name's extension (see
// format.DetectCompression) and applied transparently: Open returns plain
// JSONL bytes and a Sink accepts plain JSONL bytes.
//
// Outputs are all-or-nothing. A local Sink writes to a temporary file next to
// the target and renames it on Commit; an S3 Sink streams a multipart upload
// that only completes on Commit. Abort discards everything written so far, so
// a failed run never leaves a truncated file at the target location.
package storage
