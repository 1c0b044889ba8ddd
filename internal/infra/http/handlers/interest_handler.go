package handlers

import (
	"github.com/xavierca1/lead-management/internal/entity"
	"github.com/xavierca1/lead-management/internal/usecase"
)

type InterestHandler = ResourceHandler[usecase.InterestDTO]

func NewInterestHandler(svc ResourceService[usecase.InterestDTO], alerts Alerts) *InterestHandler {
	return &InterestHandler{
		Service:    svc,
		EntityName: "interest",
		BasePath:   "/api/interests",
		Alerts:     alerts,
		idOf:       func(d usecase.InterestDTO) entity.ID { return d.ID },
	}
}
