package domain

// EnforceRequest asks whether a role may perform action on resource. It
// lives here so middleware can depend on the shape without importing rbac.
type EnforceRequest struct {
	ActorID  string `json:"actor_id"`
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHRAdmin  = "hr_admin"
)
