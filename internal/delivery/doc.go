// Package delivery hard-links validated frame sequences into the client
// delivery tree and marks shots delivered in the catalog.
package delivery
