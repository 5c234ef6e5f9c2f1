package shared

// Background task types processed by the worker.
const (
	// TypeCleanupImages deletes orphaned listing images from object
	// storage after a creation that failed mid-sequence.
	TypeCleanupImages = "item:cleanup_images"
)

// CleanupImagesPayload carries the object keys to reclaim.
type CleanupImagesPayload struct {
	Keys   []string `json:"keys"`
	Reason string   `json:"reason"`
}
