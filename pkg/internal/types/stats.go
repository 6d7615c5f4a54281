package types

// AppStatus 依赖存活状态.
type AppStatus struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// AppStats 用户与文件记录数量.
type AppStats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// ErrorResponse 错误响应.
type ErrorResponse struct {
	Error string `json:"error"`
}
