// Package shots loads the per-shot delivery information the validator and
// linker operate on: latest version, frame range, published sequence path,
// and project code.
package shots
