package auth

// Claims es lo que el verificador extrae del token.
type Claims struct {
	UserID string
	Email  string
	Roles  []string
}
