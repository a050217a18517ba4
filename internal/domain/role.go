package domain

// Role tags stored on an account and carried in bearer-token claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether r is a known role tag.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}
