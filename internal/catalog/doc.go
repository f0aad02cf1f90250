// Package catalog talks to the production-tracking datastore. The generic
// query surface (find, find_one, update over entity records with
// field/relation/value filters) is kept deliberately thin: the remote side is
// a black box and only the entities the delivery pipeline needs are typed.
package catalog
