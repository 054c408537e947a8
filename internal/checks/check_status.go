package checks

// CheckStatus represents the three-tier status model used by checks.
type CheckStatus string

const (
	// StatusOK indicates the check passes.
	StatusOK CheckStatus = "ok"
	// StatusOptimal indicates the check meets recommended best practice.
	StatusOptimal CheckStatus = "optimal"
	// StatusWarning indicates a potential issue was detected.
	StatusWarning CheckStatus = "warning"
)

// StatusHolder is implemented by check Data types that carry a CheckStatus.
type StatusHolder interface {
	GetStatus() CheckStatus
}

// CheckData carries the status and optional evidence for a check result.
type CheckData struct {
	Status   CheckStatus
	Evidence string
	// Skipped marks a result whose target was absent rather than checked.
	Skipped bool
}

// GetStatus implements StatusHolder.
func (d *CheckData) GetStatus() CheckStatus { return d.Status }

// StatusOf extracts the CheckStatus from a result's Data payload, defaulting
// to StatusOK when the payload carries none.
func StatusOf(r *CheckResult) CheckStatus {
	if h, ok := r.Data.(StatusHolder); ok {
		return h.GetStatus()
	}
	return StatusOK
}
