package models

import (
	"time"

	"gorm.io/gorm"

	"sena-biblioteca/internal/core/domain"
)

// ============================================================
// Users & Auth
// ============================================================

// User represents the users table. Students and teachers are library
// members; admins additionally carry credentials for the back office.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:120;not null;index" json:"name"`
	Email       string         `gorm:"size:120;not null" json:"email"`
	Phone       string         `gorm:"size:30" json:"phone"`
	DocumentID  string         `gorm:"column:document_id;uniqueIndex;size:30;not null" json:"document_id"`
	Role        string         `gorm:"size:20;default:'student'" json:"role"`
	Formation   string         `gorm:"size:120" json:"formation"`
	GroupNumber string         `gorm:"size:30" json:"group_number"`
	Status      string         `gorm:"size:20;default:'active'" json:"status"`
	Password    string         `gorm:"size:255" json:"-"` // set only for back-office roles
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsActive reports whether the user account is active
func (u *User) IsActive() bool {
	return u.Status == string(domain.UserStatusActive)
}

// UserResponse DTO
type UserResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	DocumentID  string    `json:"document_id"`
	Role        string    `json:"role"`
	Formation   string    `json:"formation,omitempty"`
	GroupNumber string    `json:"group_number,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		DocumentID:  u.DocumentID,
		Role:        u.Role,
		Formation:   u.Formation,
		GroupNumber: u.GroupNumber,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
	}
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalog
// ============================================================

// Category represents the categories table (master data)
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Group       string         `gorm:"size:120" json:"group"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// Author represents the authors table (master data)
type Author struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Biography string         `gorm:"type:text" json:"biography"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Author) TableName() string {
	return "authors"
}

// Book represents the books table
type Book struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"size:200;not null;index" json:"title"`
	Author         string         `gorm:"size:120;not null" json:"author"`
	ISBN           string         `gorm:"column:isbn;size:20" json:"isbn"`
	Description    string         `gorm:"type:text" json:"description"`
	Category       string         `gorm:"size:120;index" json:"category"`
	InternalCode   string         `gorm:"size:30;uniqueIndex;not null" json:"internal_code"`
	CoverURL       string         `gorm:"size:255" json:"cover_url,omitempty"`
	StockAvailable int            `gorm:"not null;default:0;check:stock_available >= 0" json:"stock_available"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// ============================================================
// Loans
// ============================================================

// Loan represents the loans table. Loans are never deleted; the stored
// status is only ever "active" or "returned" — overdue is derived from
// the due date at read time.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RefCode    string     `gorm:"size:36;uniqueIndex;not null" json:"ref_code"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	BookID     uint       `gorm:"not null;index" json:"book_id"`
	StartDate  time.Time  `gorm:"not null" json:"start_date"`
	DueDate    time.Time  `gorm:"not null;index" json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     string     `gorm:"size:20;not null;default:'active';index" json:"status"`
	Duration   string     `gorm:"size:20;not null" json:"duration"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations (display snapshots, not authoritative)
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// Snapshot returns the storage-agnostic view used by the policy code
func (l *Loan) Snapshot() domain.LoanSnapshot {
	return domain.LoanSnapshot{
		Status:  domain.LoanStatus(l.Status),
		DueDate: l.DueDate,
	}
}

// EffectiveStatus resolves the derived overdue state for display and
// eligibility purposes
func (l *Loan) EffectiveStatus(now time.Time) domain.LoanStatus {
	return l.Snapshot().EffectiveStatus(now)
}

// LoanResponse DTO
type LoanResponse struct {
	ID         uint       `json:"id"`
	RefCode    string     `json:"ref_code"`
	UserID     uint       `json:"user_id"`
	BookID     uint       `json:"book_id"`
	BookTitle  string     `json:"book_title,omitempty"`
	UserName   string     `json:"user_name,omitempty"`
	StartDate  time.Time  `json:"start_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
	Duration   string     `json:"duration"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToResponse builds the DTO, reporting the effective (derived) status
func (l *Loan) ToResponse(now time.Time) *LoanResponse {
	resp := &LoanResponse{
		ID:         l.ID,
		RefCode:    l.RefCode,
		UserID:     l.UserID,
		BookID:     l.BookID,
		StartDate:  l.StartDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Status:     string(l.EffectiveStatus(now)),
		Duration:   l.Duration,
		CreatedAt:  l.CreatedAt,
	}

	if l.Book != nil {
		resp.BookTitle = l.Book.Title
	}
	if l.User != nil {
		resp.UserName = l.User.Name
	}

	return resp
}

// ============================================================
// Notifications
// ============================================================

// Notification kinds
const (
	NotificationOverdue = "OVERDUE"
	NotificationDueSoon = "DUE_SOON"
)

// Notification represents the notifications table, written by the
// daily reminder job
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	LoanID    uint      `gorm:"not null;index" json:"loan_id"`
	Kind      string    `gorm:"size:20;not null" json:"kind"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	SentAt    time.Time `gorm:"not null;index" json:"sent_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Loan *Loan `gorm:"foreignKey:LoanID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Category{},
		&Author{},
		&Book{},
		&Loan{},
		&Notification{},
	)
}
