package types

// CreateUserRequest 注册请求.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse 用户信息.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokenResponse 登录成功返回的会话令牌.
type TokenResponse struct {
	Token string `json:"token"`
}
