// Ladder is a confidential career-promotion evaluation runtime.
//
// It holds employee attributes only as ciphertext handles, runs the full
// promotion simulation obliviously against a configurable promotion
// ladder, and reveals results exclusively through an audited disclosure
// protocol backed by a threshold decryption oracle.
//
// Usage:
//
//	# Start the runtime with default configuration
//	ladder run
//
//	# Start with a custom configuration file
//	ladder run --config /path/to/config.yaml
//
//	# Validate a promotion ladder file
//	ladder lint --file ladder.yaml
//
//	# Walk one subject through the full lifecycle locally
//	ladder demo
//
//	# Show version information
//	ladder version
package main

func main() {
	Execute()
}
