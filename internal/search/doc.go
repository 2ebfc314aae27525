// Package search implements the article search and filter engine. The engine
// is a pure function of the article list and the options: it performs no I/O,
// keeps no state between calls and never modifies its input.
package search
