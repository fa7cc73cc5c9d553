package model

// LoginRequest is the API request body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the dashboard operator returned on login.
type User struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// LoginResponse is the API response for a successful login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// LoginFailure is the API response for rejected credentials.
type LoginFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse is the API response for GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
