package models

import (
	"time"
)

// User represents a registered student account. Accounts are created at
// signup and never edited or deleted afterwards.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Phone        string    `gorm:"not null" json:"phone"`
	College      string    `gorm:"not null" json:"college"`
	Branch       string    `gorm:"not null" json:"branch"`
	Semester     string    `gorm:"not null" json:"semester"`
}

// Resource represents an uploaded file and its metadata. Filename is the
// system-generated stored name; OriginalFilename is what the uploader named
// the file and is used as the delivery name on download.
type Resource struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	User             User      `gorm:"foreignKey:UserID" json:"-"`
	Title            string    `gorm:"not null" json:"title"`
	Subject          string    `gorm:"not null" json:"subject"`
	Semester         string    `gorm:"not null" json:"semester"`
	ResourceType     string    `gorm:"not null" json:"resource_type"`
	YearBatch        string    `gorm:"not null" json:"year_batch"`
	Description      string    `json:"description"`
	Tags             string    `json:"tags"`
	Filename         string    `gorm:"uniqueIndex;not null" json:"-"`
	OriginalFilename string    `gorm:"not null" json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	Privacy          Privacy   `gorm:"type:varchar(16);not null;default:Public" json:"privacy"`
	UploadDate       time.Time `gorm:"autoCreateTime" json:"upload_date"`
}

// Review holds one rating plus optional text per (resource, user) pair.
// The composite unique index is the enforcement point for the
// one-review-per-pair rule; concurrent submissions race on it, not on
// handler logic.
type Review struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ResourceID uint      `gorm:"not null;uniqueIndex:idx_review_resource_user" json:"resource_id"`
	Resource   Resource  `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE" json:"-"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_review_resource_user" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DownloadEvent is an append-only ledger row recording that a user fetched
// a resource's file. Rows are never updated; repeat downloads append again.
type DownloadEvent struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ResourceID   uint      `gorm:"not null;index" json:"resource_id"`
	Resource     Resource  `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE" json:"-"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
	DownloadDate time.Time `gorm:"autoCreateTime" json:"download_date"`
}

// TableName keeps the historical table name for the ledger.
func (DownloadEvent) TableName() string { return "download_history" }
