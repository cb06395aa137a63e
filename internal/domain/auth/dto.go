package auth

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=2,max=120"`
	Phone          *string `json:"phone" binding:"omitempty,max=32"`
	AvatarURL      *string `json:"avatar_url" binding:"omitempty,max=500"`
	Bio            *string `json:"bio" binding:"omitempty,max=2000"`
	Specialization *string `json:"specialization" binding:"omitempty,max=120"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=72"`
}

type CreateTrainerRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=120"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6,max=72"`
	Phone          string `json:"phone" binding:"omitempty,max=32"`
	Bio            string `json:"bio" binding:"omitempty,max=2000"`
	Specialization string `json:"specialization" binding:"omitempty,max=120"`
}

type AdminUpdateUserRequest struct {
	Role     *Role `json:"role"`
	IsActive *bool `json:"is_active"`
}

type UserFilter struct {
	Role     Role
	IsActive *bool
	Search   string
}

type AuthResult struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TrainerProfile is the public view of a trainer account.
type TrainerProfile struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}
