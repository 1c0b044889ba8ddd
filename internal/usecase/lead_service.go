package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/xavierca1/lead-management/internal/entity"
	"github.com/xavierca1/lead-management/internal/infra/queue"
)

const leadEntityName = "lead"

type LeadService struct {
	Repo      entity.LeadRepositoryInterface
	Tx        Transactor
	Publisher EventPublisher
}

func NewLeadService(repo entity.LeadRepositoryInterface, tx Transactor, publisher EventPublisher) *LeadService {
	if publisher == nil {
		publisher = queue.NoopProducer{}
	}
	return &LeadService{
		Repo:      repo,
		Tx:        tx,
		Publisher: publisher,
	}
}

// Save inserts a new lead. Any id carried by d is discarded.
func (s *LeadService) Save(ctx context.Context, d LeadDTO) (LeadDTO, error) {
	slog.DebugContext(ctx, "Request to save Lead", "name", d.Name.OrZero())

	if errs := ValidateLead(d); len(errs) > 0 {
		return LeadDTO{}, newValidationError(leadEntityName, errs)
	}

	lead := LeadToEntity(d)
	lead.ID = entity.ID{}

	var saved *entity.Lead
	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.Repo.Save(ctx, lead)
		return err
	})
	if err != nil {
		return LeadDTO{}, databaseError("save lead", err)
	}

	out := LeadToDTO(saved)
	s.publish(ctx, queue.ActionCreated, saved.ID, out)
	return out, nil
}

// Update fully replaces the stored row. Fields missing from d are cleared.
// It never inserts: a row deleted meanwhile is reported as idnotfound.
func (s *LeadService) Update(ctx context.Context, d LeadDTO) (LeadDTO, error) {
	slog.DebugContext(ctx, "Request to update Lead", "id", d.ID.String())

	if errs := ValidateLead(d); len(errs) > 0 {
		return LeadDTO{}, newValidationError(leadEntityName, errs)
	}

	var saved *entity.Lead
	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.Repo.Save(ctx, LeadToEntity(d))
		return err
	})
	if errors.Is(err, entity.ErrNotFound) {
		return LeadDTO{}, errIDNotFound()
	}
	if err != nil {
		return LeadDTO{}, databaseError("update lead", err)
	}

	out := LeadToDTO(saved)
	s.publish(ctx, queue.ActionUpdated, saved.ID, out)
	return out, nil
}

// PartialUpdate merges the fields of d carrying a value onto the stored lead.
// found is false when no lead has d's id.
func (s *LeadService) PartialUpdate(ctx context.Context, d LeadDTO) (LeadDTO, bool, error) {
	slog.DebugContext(ctx, "Request to partially update Lead", "id", d.ID.String())

	if errs := ValidateLeadPatch(d); len(errs) > 0 {
		return LeadDTO{}, false, newValidationError(leadEntityName, errs)
	}
	id, ok := d.ID.Int64()
	if !ok {
		return LeadDTO{}, false, nil
	}

	var saved *entity.Lead
	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.Repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		merged := PartialUpdateLead(existing, d)
		if err := merged.Validate(); err != nil {
			return &DomainError{Code: "validation", Message: err.Error()}
		}
		saved, err = s.Repo.Save(ctx, merged)
		return err
	})
	if errors.Is(err, entity.ErrNotFound) {
		return LeadDTO{}, false, nil
	}
	if IsDomainError(err) {
		return LeadDTO{}, false, err
	}
	if err != nil {
		return LeadDTO{}, false, databaseError("partially update lead", err)
	}

	out := LeadToDTO(saved)
	s.publish(ctx, queue.ActionUpdated, saved.ID, out)
	return out, true, nil
}

func (s *LeadService) FindAll(ctx context.Context, pageable entity.Pageable) (entity.Page[LeadDTO], error) {
	slog.DebugContext(ctx, "Request to get all Leads", "page", pageable.Page, "size", pageable.Size)

	page, err := s.Repo.FindAll(ctx, pageable)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidSort) {
			return entity.Page[LeadDTO]{}, err
		}
		return entity.Page[LeadDTO]{}, databaseError("list leads", err)
	}
	return entity.MapPage(page, LeadToDTO), nil
}

func (s *LeadService) FindOne(ctx context.Context, id int64) (LeadDTO, bool, error) {
	slog.DebugContext(ctx, "Request to get Lead", "id", id)

	lead, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return LeadDTO{}, false, nil
	}
	if err != nil {
		return LeadDTO{}, false, databaseError("find lead", err)
	}
	return LeadToDTO(lead), true, nil
}

func (s *LeadService) Exists(ctx context.Context, id int64) (bool, error) {
	ok, err := s.Repo.ExistsByID(ctx, id)
	if err != nil {
		return false, databaseError("check lead", err)
	}
	return ok, nil
}

func (s *LeadService) Delete(ctx context.Context, id int64) error {
	slog.DebugContext(ctx, "Request to delete Lead", "id", id)

	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.Repo.DeleteByID(ctx, id)
	})
	if err != nil {
		return databaseError("delete lead", err)
	}

	s.publish(ctx, queue.ActionDeleted, entity.NewID(id), nil)
	return nil
}

func (s *LeadService) publish(ctx context.Context, action string, id entity.ID, payload any) {
	publishEvent(ctx, s.Publisher, leadEntityName, action, id, payload)
}

// publishEvent runs after commit, so a broker failure is logged and never
// turned into a request error.
func publishEvent(ctx context.Context, p EventPublisher, entityName, action string, id entity.ID, payload any) {
	entityID, _ := id.Int64()
	event := queue.NewEntityEvent(entityName, action, entityID, payload)
	if err := p.PublishEntityEvent(ctx, event); err != nil {
		slog.WarnContext(ctx, "entity event not published",
			"entity", entityName, "action", action, "entity_id", entityID, "error", err)
	}
}
