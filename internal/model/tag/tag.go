package tag

// Tag 问题标签
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"type:varchar(50);uniqueIndex;not null" json:"title"`
}

func (Tag) TableName() string {
	return "tags"
}
