package login

// LoginRequest 登录表单，username 也可填写邮箱
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type LoginResponse struct {
	RedirectURL string `json:"redirect_url"`
}
