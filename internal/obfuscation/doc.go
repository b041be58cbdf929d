// Package obfuscation XORs files with a keyed byte stream.
// Files are streamed in fixed-size blocks and written back in place,
// through an atomically renamed temporary file, to an output file or to stdout.
// Processing is sequential and stops at the first failing path.
package obfuscation
