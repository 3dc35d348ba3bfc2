package schema

// Login is the admin login payload.
type Login struct {
	Password string `json:"password" validate:"required"`
}
