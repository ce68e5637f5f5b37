package dto

// StudentRegisterRequest is the payload for student registration
type StudentRegisterRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Mobile        string `json:"mobile" binding:"required,min=10,max=15"`
	Qualification string `json:"qualification"`
	Password      string `json:"password" binding:"required,min=6"`
}

// StudentLoginRequest is the payload for student login
type StudentLoginRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginRequest is the payload for admin login
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminRegisterRequest is the payload for creating an admin account
type AdminRegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AdminResponse is the public view of an admin account
type AdminResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	Role      string `json:"role"`
}

// StudentResponse is the public view of a student
type StudentResponse struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Mobile        string `json:"mobile"`
	Qualification string `json:"qualification,omitempty"`
}
