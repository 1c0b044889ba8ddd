package entity

import (
	"errors"
	"strings"
	"time"
)

type Interest struct {
	ID          ID
	Category    string
	Brand       *string
	ArticleID   *string
	OrderID     *string
	IsPurchased *bool
	CreatedAt   *time.Time
	CreatedBy   *string
	UpdatedAt   *time.Time
	UpdatedBy   *string

	// lead is only changed through Lead.SetInterests, AddInterest and RemoveInterest.
	lead *Lead
}

// Lead returns the owning lead, or nil when the interest is unassigned.
func (i *Interest) Lead() *Lead {
	return i.lead
}

func (i *Interest) Validate() error {
	if strings.TrimSpace(i.Category) == "" {
		return errors.New("category is required")
	}
	return nil
}

// Equal compares by identifier. An interest without an identifier is only equal to itself.
func (i *Interest) Equal(other *Interest) bool {
	if i == nil || other == nil {
		return false
	}
	if i == other {
		return true
	}
	return i.ID.Equal(other.ID)
}
