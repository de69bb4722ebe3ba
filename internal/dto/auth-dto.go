package dto

// Principal is the opaque, already-authenticated identity attached to a
// request. The service consumes it; it never authenticates anything itself.
type Principal struct {
	ActorID   string `json:"actor_id"`
	ActorName string `json:"actor_name"`
	ActorRole string `json:"actor_role"`
}

// Resolved reports whether a usable identity is present.
func (p Principal) Resolved() bool {
	return p.ActorID != ""
}
