package entity

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type PeerRole string

const (
	RoleInitiator PeerRole = "initiator"
	RoleResponder PeerRole = "responder"
)

// Signal - is the negotiation payload one side of a peer link publishes for the other.
type Signal struct {
	Role  PeerRole `json:"role"`
	URL   string   `json:"url,omitempty"`
	Token string   `json:"token,omitempty"`
}
