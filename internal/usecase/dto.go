package usecase

import (
	"time"

	"github.com/xavierca1/lead-management/internal/entity"
)

type LeadDTO struct {
	ID        entity.ID           `json:"id"`
	Name      Optional[string]    `json:"name" validate:"required,notblank"`
	Phone     Optional[int64]     `json:"phone" validate:"required,min=1000000000,max=9999999999"`
	CreatedAt Optional[time.Time] `json:"createdAt"`
	CreatedBy Optional[string]    `json:"createdBy"`
	UpdatedAt Optional[time.Time] `json:"updatedAt"`
	UpdatedBy Optional[string]    `json:"updatedBy"`
}

// Equal compares by identifier, like the entities.
func (d LeadDTO) Equal(other LeadDTO) bool {
	return d.ID.Equal(other.ID)
}

// LeadRef is the shallow projection of a lead embedded in an interest.
type LeadRef struct {
	ID entity.ID `json:"id"`
}

type InterestDTO struct {
	ID          entity.ID           `json:"id"`
	Category    Optional[string]    `json:"category" validate:"required,notblank"`
	Brand       Optional[string]    `json:"brand"`
	ArticleID   Optional[string]    `json:"articleId"`
	OrderID     Optional[string]    `json:"orderId"`
	IsPurchased Optional[bool]      `json:"isPurchased"`
	CreatedAt   Optional[time.Time] `json:"createdAt"`
	CreatedBy   Optional[string]    `json:"createdBy"`
	UpdatedAt   Optional[time.Time] `json:"updatedAt"`
	UpdatedBy   Optional[string]    `json:"updatedBy"`
	Lead        Optional[LeadRef]   `json:"lead"`
}

func (d InterestDTO) Equal(other InterestDTO) bool {
	return d.ID.Equal(other.ID)
}

// leadID returns the referenced lead id, if any.
func (d InterestDTO) leadID() (int64, bool) {
	ref, ok := d.Lead.Get()
	if !ok {
		return 0, false
	}
	return ref.ID.Int64()
}
