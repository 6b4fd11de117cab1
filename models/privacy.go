package models

// Privacy is a resource's visibility flag.
type Privacy string

const (
	PrivacyPublic  Privacy = "Public"
	PrivacyPrivate Privacy = "Private"
)

// Valid reports whether p is one of the defined privacy values.
func (p Privacy) Valid() bool {
	return p == PrivacyPublic || p == PrivacyPrivate
}

// AccessibleTo decides whether an account from requesterCollege may fetch
// a resource uploaded by an account from ownerCollege. Public resources
// are open to everyone; Private resources require an exact,
// case-sensitive college match. Unknown privacy values fail closed.
func (p Privacy) AccessibleTo(ownerCollege, requesterCollege string) bool {
	switch p {
	case PrivacyPublic:
		return true
	case PrivacyPrivate:
		return ownerCollege == requesterCollege
	default:
		return false
	}
}
