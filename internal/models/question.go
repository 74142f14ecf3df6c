package models

type Question struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	EventID       uint   `gorm:"not null;index" json:"event_id"`
	CategoryID    *uint  `gorm:"index" json:"category_id,omitempty"`
	Text          string `gorm:"size:255;not null" json:"text"`
	OptionA       string `gorm:"size:100" json:"option_a"`
	OptionB       string `gorm:"size:100" json:"option_b"`
	OptionC       string `gorm:"size:100" json:"option_c"`
	CorrectAnswer string `gorm:"size:1;not null" json:"-"`
	Source        string `gorm:"size:10;not null;default:'manual'" json:"source"`
}

const (
	QuestionSourceManual = "manual"
	QuestionSourceAI     = "ai"
)

type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:100;uniqueIndex;not null" json:"title"`
	OrderNum int    `gorm:"not null;default:0" json:"order_num"`
}
