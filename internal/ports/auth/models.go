package auth

// Claims identifica a quien está usando la app (cuidador/familiar).
// Name se usa como autor por defecto en el historial.
type Claims struct {
	UserID string
	Name   string
	Email  string
}

// DisplayName devuelve Name, o UserID si el token no trae nombre.
func (c Claims) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.UserID
}
