package user

// CurrentUserResponse is returned by the /users/me endpoint.
type CurrentUserResponse struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	IsActive    bool     `json:"is_active"`
	IsSuperuser bool     `json:"is_superuser"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

type UpdateUserDTO struct {
	Email       *string `json:"email,omitempty"`
	Username    *string `json:"username,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
}

type AssignRolesDTO struct {
	RoleIDs []int64 `json:"role_ids"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d AssignRolesDTO) Validate() error {
	if d.RoleIDs == nil {
		return ValidationError{Msg: "role_ids is required"}
	}
	return nil
}

func (u *User) ToCurrentUserResponse() CurrentUserResponse {
	roles := u.RoleNames()
	permissions := u.PermissionNames()
	if roles == nil {
		roles = []string{}
	}
	if permissions == nil {
		permissions = []string{}
	}
	return CurrentUserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		Roles:       roles,
		Permissions: permissions,
	}
}
