package db

import "time"

// Upload 记录一次已持久化的数据 URI 上传。
type Upload struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PublicID    string `gorm:"column:public_id;type:varchar(36);uniqueIndex;not null" json:"public_id"`
	Field       string `gorm:"column:field;type:varchar(128);not null" json:"field"`
	MediaType   string `gorm:"column:media_type;type:varchar(255);index;not null" json:"media_type"`
	Size        int64  `gorm:"column:size;not null" json:"size"`
	StorageType string `gorm:"column:storage_type;type:varchar(32);not null" json:"storage_type"`
	StorageKey  string `gorm:"column:storage_key;type:varchar(512);not null" json:"storage_key"`
	Owner       string `gorm:"column:owner;type:varchar(255);index" json:"owner"`
}

// TableName 指定表名。
func (Upload) TableName() string {
	return "uploads"
}
