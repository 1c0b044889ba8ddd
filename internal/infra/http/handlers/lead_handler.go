package handlers

import (
	"github.com/xavierca1/lead-management/internal/entity"
	"github.com/xavierca1/lead-management/internal/usecase"
)

type LeadHandler = ResourceHandler[usecase.LeadDTO]

func NewLeadHandler(svc ResourceService[usecase.LeadDTO], alerts Alerts) *LeadHandler {
	return &LeadHandler{
		Service:    svc,
		EntityName: "lead",
		BasePath:   "/api/leads",
		Alerts:     alerts,
		idOf:       func(d usecase.LeadDTO) entity.ID { return d.ID },
	}
}
