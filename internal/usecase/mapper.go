package usecase

import "github.com/xavierca1/lead-management/internal/entity"

func LeadToDTO(l *entity.Lead) LeadDTO {
	return LeadDTO{
		ID:        l.ID,
		Name:      Of(l.Name),
		Phone:     Of(l.Phone),
		CreatedAt: FromPtr(l.CreatedAt),
		CreatedBy: FromPtr(l.CreatedBy),
		UpdatedAt: FromPtr(l.UpdatedAt),
		UpdatedBy: FromPtr(l.UpdatedBy),
	}
}

func LeadToEntity(d LeadDTO) *entity.Lead {
	return &entity.Lead{
		ID:        d.ID,
		Name:      d.Name.OrZero(),
		Phone:     d.Phone.OrZero(),
		CreatedAt: d.CreatedAt.Ptr(),
		CreatedBy: d.CreatedBy.Ptr(),
		UpdatedAt: d.UpdatedAt.Ptr(),
		UpdatedBy: d.UpdatedBy.Ptr(),
	}
}

// PartialUpdateLead copies every field of d that carries a value onto
// existing. Absent and null fields leave existing untouched.
func PartialUpdateLead(existing *entity.Lead, d LeadDTO) *entity.Lead {
	if v, ok := d.Name.Get(); ok {
		existing.Name = v
	}
	if v, ok := d.Phone.Get(); ok {
		existing.Phone = v
	}
	if v, ok := d.CreatedAt.Get(); ok {
		existing.CreatedAt = &v
	}
	if v, ok := d.CreatedBy.Get(); ok {
		existing.CreatedBy = &v
	}
	if v, ok := d.UpdatedAt.Get(); ok {
		existing.UpdatedAt = &v
	}
	if v, ok := d.UpdatedBy.Get(); ok {
		existing.UpdatedBy = &v
	}
	return existing
}

// InterestToDTO projects the owning lead as its identifier only, so a lead's
// interests are never expanded again.
func InterestToDTO(i *entity.Interest) InterestDTO {
	d := InterestDTO{
		ID:          i.ID,
		Category:    Of(i.Category),
		Brand:       FromPtr(i.Brand),
		ArticleID:   FromPtr(i.ArticleID),
		OrderID:     FromPtr(i.OrderID),
		IsPurchased: FromPtr(i.IsPurchased),
		CreatedAt:   FromPtr(i.CreatedAt),
		CreatedBy:   FromPtr(i.CreatedBy),
		UpdatedAt:   FromPtr(i.UpdatedAt),
		UpdatedBy:   FromPtr(i.UpdatedBy),
		Lead:        Null[LeadRef](),
	}
	if l := i.Lead(); l != nil {
		d.Lead = Of(LeadRef{ID: l.ID})
	}
	return d
}

func InterestToEntity(d InterestDTO) *entity.Interest {
	i := &entity.Interest{
		ID:          d.ID,
		Category:    d.Category.OrZero(),
		Brand:       d.Brand.Ptr(),
		ArticleID:   d.ArticleID.Ptr(),
		OrderID:     d.OrderID.Ptr(),
		IsPurchased: d.IsPurchased.Ptr(),
		CreatedAt:   d.CreatedAt.Ptr(),
		CreatedBy:   d.CreatedBy.Ptr(),
		UpdatedAt:   d.UpdatedAt.Ptr(),
		UpdatedBy:   d.UpdatedBy.Ptr(),
	}
	if leadID, ok := d.leadID(); ok {
		entity.NewLeadRef(leadID).AddInterest(i)
	}
	return i
}

func PartialUpdateInterest(existing *entity.Interest, d InterestDTO) *entity.Interest {
	if v, ok := d.Category.Get(); ok {
		existing.Category = v
	}
	if v, ok := d.Brand.Get(); ok {
		existing.Brand = &v
	}
	if v, ok := d.ArticleID.Get(); ok {
		existing.ArticleID = &v
	}
	if v, ok := d.OrderID.Get(); ok {
		existing.OrderID = &v
	}
	if v, ok := d.IsPurchased.Get(); ok {
		existing.IsPurchased = &v
	}
	if v, ok := d.CreatedAt.Get(); ok {
		existing.CreatedAt = &v
	}
	if v, ok := d.CreatedBy.Get(); ok {
		existing.CreatedBy = &v
	}
	if v, ok := d.UpdatedAt.Get(); ok {
		existing.UpdatedAt = &v
	}
	if v, ok := d.UpdatedBy.Get(); ok {
		existing.UpdatedBy = &v
	}
	if leadID, ok := d.leadID(); ok {
		target := entity.NewID(leadID)
		if cur := existing.Lead(); cur == nil || !cur.ID.Equal(target) {
			entity.NewLeadRef(leadID).AddInterest(existing)
		}
	}
	return existing
}
