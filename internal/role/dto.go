package role

type CreateRoleDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateRoleDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type AssignPermissionsDTO struct {
	PermissionIDs []int64 `json:"permission_ids"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateRoleDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	return nil
}

func (d AssignPermissionsDTO) Validate() error {
	if d.PermissionIDs == nil {
		return ValidationError{Msg: "permission_ids is required"}
	}
	return nil
}
