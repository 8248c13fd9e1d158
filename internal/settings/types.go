package settings

// SettingsRequest 个人资料更新，空字段保持不变
type SettingsRequest struct {
	Email    string `form:"email" json:"email" binding:"omitempty,email"`
	Nickname string `form:"nickname" json:"nickname" binding:"omitempty,max=50"`
}
