// Package suggest extracts suggestion-ready candidates from a live thread
// set: which literals may legally extend the current input, which free-text
// slots are open, and whether the input already forms a complete command
// that could be submitted as-is.
package suggest
