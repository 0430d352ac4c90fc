package domain

// IdentifierType selects which field of a user record a login identifier
// is matched against.
type IdentifierType string

const (
	IdentifierEmail    IdentifierType = "email"
	IdentifierUsername IdentifierType = "username"
	IdentifierPhone    IdentifierType = "phone"
)

// Valid reports whether t is one of the supported identifier types.
func (t IdentifierType) Valid() bool {
	switch t {
	case IdentifierEmail, IdentifierUsername, IdentifierPhone:
		return true
	}
	return false
}

// User models a credential record in the store. Each identifying field
// (email, username, phone) is unique across the store; records are
// read-only for the lifetime of the process.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `json:"-"`
}
