package handler

type createUserRequest struct {
	Username string   `json:"username" validate:"required,min=5"`
	Password string   `json:"password" validate:"required,min=5"`
	Email    string   `json:"email"    validate:"required,email"`
	Roles    []string `json:"roles"    validate:"omitempty,min=1,dive,required"`
}

type updateUserRequest struct {
	Username string   `json:"username" validate:"required,min=5"`
	Email    string   `json:"email"    validate:"required,email"`
	Roles    []string `json:"roles"    validate:"required,min=1,dive,required"`
	Active   *bool    `json:"active"   validate:"required"`
	Password string   `json:"password" validate:"omitempty,min=5"`
}
