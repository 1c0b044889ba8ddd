package entity

import (
	"errors"
	"strings"
	"time"
)

// Phone numbers are stored as 10-digit integers.
const (
	PhoneMin int64 = 1000000000
	PhoneMax int64 = 9999999999
)

type Lead struct {
	ID        ID
	Name      string
	Phone     int64
	CreatedAt *time.Time
	CreatedBy *string
	UpdatedAt *time.Time
	UpdatedBy *string

	interests []*Interest
}

// NewLeadRef builds a reference holding only an identifier. Relationship
// resolution is left to the persistence layer.
func NewLeadRef(id int64) *Lead {
	return &Lead{ID: NewID(id)}
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("name is required")
	}
	if l.Phone < PhoneMin || l.Phone > PhoneMax {
		return errors.New("phone must be a 10 digit number")
	}
	return nil
}

// Equal compares by identifier. A lead without an identifier is only equal to itself.
func (l *Lead) Equal(other *Lead) bool {
	if l == nil || other == nil {
		return false
	}
	if l == other {
		return true
	}
	return l.ID.Equal(other.ID)
}

// Interests returns a copy of the associated interests.
func (l *Lead) Interests() []*Interest {
	out := make([]*Interest, len(l.interests))
	copy(out, l.interests)
	return out
}

// SetInterests replaces the associated interests, keeping every back-reference
// in sync. Members that stay in the set are never detached in between.
func (l *Lead) SetInterests(interests []*Interest) {
	for _, cur := range l.interests {
		if !containsPtr(interests, cur) {
			cur.lead = nil
		}
	}

	next := make([]*Interest, 0, len(interests))
	for _, i := range interests {
		if i == nil || containsInterest(next, i) {
			continue
		}
		if i.lead != nil && i.lead != l {
			i.lead.dropInterest(i)
		}
		i.lead = l
		next = append(next, i)
	}
	l.interests = next
}

// AddInterest associates i with l. An interest owned by another lead is moved.
func (l *Lead) AddInterest(i *Interest) {
	if i == nil {
		return
	}
	if i.lead != nil && i.lead != l {
		i.lead.dropInterest(i)
	}
	if !containsInterest(l.interests, i) {
		l.interests = append(l.interests, i)
	}
	i.lead = l
}

// RemoveInterest removes i from l and clears its back-reference.
func (l *Lead) RemoveInterest(i *Interest) {
	if i == nil {
		return
	}
	l.dropInterest(i)
	if i.lead != nil && i.lead != l {
		i.lead.dropInterest(i)
	}
	i.lead = nil
}

func (l *Lead) dropInterest(i *Interest) {
	kept := l.interests[:0]
	for _, cur := range l.interests {
		if !sameInterest(cur, i) {
			kept = append(kept, cur)
		}
	}
	for n := len(kept); n < len(l.interests); n++ {
		l.interests[n] = nil
	}
	l.interests = kept
}

func sameInterest(a, b *Interest) bool {
	return a == b || a.Equal(b)
}

func containsInterest(set []*Interest, i *Interest) bool {
	for _, cur := range set {
		if sameInterest(cur, i) {
			return true
		}
	}
	return false
}

func containsPtr(set []*Interest, i *Interest) bool {
	for _, cur := range set {
		if cur == i {
			return true
		}
	}
	return false
}
