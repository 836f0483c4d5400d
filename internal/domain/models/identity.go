package models

// Identity is the caller identity injected by the hosting platform. It is
// resolved once per request and never stored.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
}
