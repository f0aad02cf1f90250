package delivery

// Outcome classifies how a delivery attempt ended.
type Outcome string

const (
	// OutcomeDelivered means every frame linked and the catalog status was
	// updated.
	OutcomeDelivered Outcome = "delivered"
	// OutcomeAlreadyExported means a destination frame already existed. The
	// catalog status is left untouched.
	OutcomeAlreadyExported Outcome = "already_exported"
	// OutcomeLinkFailed covers every other filesystem failure. Frames linked
	// before the failure stay on disk; the catalog status is left untouched.
	OutcomeLinkFailed Outcome = "link_failed"
	// OutcomeCatalogFailed means all frames linked but the status update
	// failed.
	OutcomeCatalogFailed Outcome = "catalog_failed"
)

// Result is the typed per-shot outcome of a delivery attempt. Message is
// operator-facing advisory text.
type Result struct {
	Outcome      Outcome
	Message      string
	FramesLinked int
	Err          error
}

// Delivered reports whether the shot was fully delivered and marked as such.
func (r Result) Delivered() bool {
	return r.Outcome == OutcomeDelivered
}
