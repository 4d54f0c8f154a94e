package types

// User is an authenticated account as returned by the account service.
// The arena treats it opaquely; it is never mutated locally.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Role        string `json:"role,omitempty"`
}
