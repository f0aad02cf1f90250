// Package pipeline provides the error taxonomy and context annotations shared
// by the loader, validator, and linker stages.
package pipeline
