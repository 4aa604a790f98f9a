package handler

// Form payloads for the user maintenance page. Field names follow the form
// inputs so validation errors land beneath the right one.

type userCreateForm struct {
	Name     string `form:"name" validate:"required,max=255"`
	Email    string `form:"email" validate:"required,email,max=255"`
	Password string `form:"password" validate:"required,min=8"`
	Role     string `form:"user_roles" validate:"required,oneof=admin user vendor"`
}

// userUpdateForm deliberately has no password: the edit flow never touches it.
type userUpdateForm struct {
	Name  string `form:"name" validate:"required,max=255"`
	Email string `form:"email" validate:"required,email,max=255"`
	Role  string `form:"user_roles" validate:"required,oneof=admin user vendor"`
}

// deleteForm carries the typed confirmation for both entities. Matching is
// validated by the service, not by a tag, so the mismatch message is exact.
type deleteForm struct {
	Confirmation string `form:"confirmation"`
}

func (f userCreateForm) old() map[string]string {
	// The password is never echoed back.
	return map[string]string{
		"name":       f.Name,
		"email":      f.Email,
		"user_roles": f.Role,
	}
}

func (f userUpdateForm) old() map[string]string {
	return map[string]string{
		"name":       f.Name,
		"email":      f.Email,
		"user_roles": f.Role,
	}
}
