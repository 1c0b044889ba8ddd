package database

import (
	"time"

	"github.com/xavierca1/lead-management/internal/entity"
)

// Audit columns are written exactly as supplied, gorm must not stamp them.

type leadRecord struct {
	ID        int64      `gorm:"primaryKey"`
	Name      string     `gorm:"not null"`
	Phone     int64      `gorm:"not null"`
	CreatedAt *time.Time `gorm:"autoCreateTime:false"`
	CreatedBy *string
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
	UpdatedBy *string
}

func (leadRecord) TableName() string { return "lead" }

type interestRecord struct {
	ID          int64  `gorm:"primaryKey"`
	Category    string `gorm:"not null"`
	Brand       *string
	ArticleID   *string
	OrderID     *string
	IsPurchased *bool
	CreatedAt   *time.Time `gorm:"autoCreateTime:false"`
	CreatedBy   *string
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
	UpdatedBy   *string
	LeadID      *int64      `gorm:"index"`
	Lead        *leadRecord `gorm:"foreignKey:LeadID;constraint:OnDelete:RESTRICT"`
}

func (interestRecord) TableName() string { return "interest" }

func newLeadRecord(l *entity.Lead) *leadRecord {
	id, _ := l.ID.Int64()
	return &leadRecord{
		ID:        id,
		Name:      l.Name,
		Phone:     l.Phone,
		CreatedAt: l.CreatedAt,
		CreatedBy: l.CreatedBy,
		UpdatedAt: l.UpdatedAt,
		UpdatedBy: l.UpdatedBy,
	}
}

func (r *leadRecord) toEntity() *entity.Lead {
	return &entity.Lead{
		ID:        entity.NewID(r.ID),
		Name:      r.Name,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt,
		CreatedBy: r.CreatedBy,
		UpdatedAt: r.UpdatedAt,
		UpdatedBy: r.UpdatedBy,
	}
}

func newInterestRecord(i *entity.Interest) *interestRecord {
	id, _ := i.ID.Int64()
	rec := &interestRecord{
		ID:          id,
		Category:    i.Category,
		Brand:       i.Brand,
		ArticleID:   i.ArticleID,
		OrderID:     i.OrderID,
		IsPurchased: i.IsPurchased,
		CreatedAt:   i.CreatedAt,
		CreatedBy:   i.CreatedBy,
		UpdatedAt:   i.UpdatedAt,
		UpdatedBy:   i.UpdatedBy,
	}
	if l := i.Lead(); l != nil {
		rec.LeadID = l.ID.Ptr()
	}
	return rec
}

// toEntity attaches the interest to a lead stub; the lead row is not loaded.
func (r *interestRecord) toEntity() *entity.Interest {
	i := &entity.Interest{
		ID:          entity.NewID(r.ID),
		Category:    r.Category,
		Brand:       r.Brand,
		ArticleID:   r.ArticleID,
		OrderID:     r.OrderID,
		IsPurchased: r.IsPurchased,
		CreatedAt:   r.CreatedAt,
		CreatedBy:   r.CreatedBy,
		UpdatedAt:   r.UpdatedAt,
		UpdatedBy:   r.UpdatedBy,
	}
	if r.LeadID != nil {
		entity.NewLeadRef(*r.LeadID).AddInterest(i)
	}
	return i
}
