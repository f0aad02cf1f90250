// Package sequence validates rendered frame sequences before delivery and
// formats per-frame paths from %d-style patterns.
package sequence
