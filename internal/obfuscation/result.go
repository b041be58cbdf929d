package obfuscation

// Summary accumulates the outcome of a run.
type Summary struct {
	// Number of files or streams fully transformed
	Files int

	// Bytes transformed across all files
	Bytes int64
}
