package dto

// AdminUserRequest is the admin-only user creation/edit payload. Unlike
// self-registration it may set role to admin.
type AdminUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}
