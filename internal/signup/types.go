package signup

// SignupRequest 注册表单（multipart，可附带 avatar 文件）
type SignupRequest struct {
	Username  string `form:"username" json:"username" binding:"required,min=3,max=150"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	Nickname  string `form:"nickname" json:"nickname" binding:"required,max=50"`
	Password1 string `form:"password1" json:"password1" binding:"required,min=8"`
	Password2 string `form:"password2" json:"password2" binding:"required,eqfield=Password1"`
}

type SignupResponse struct {
	RedirectURL string `json:"redirect_url"`
}
