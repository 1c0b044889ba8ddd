package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/xavierca1/lead-management/internal/entity"
	"github.com/xavierca1/lead-management/internal/infra/queue"
)

const interestEntityName = "interest"

type InterestService struct {
	Repo      entity.InterestRepositoryInterface
	LeadRepo  entity.LeadRepositoryInterface
	Tx        Transactor
	Publisher EventPublisher
}

func NewInterestService(
	repo entity.InterestRepositoryInterface,
	leadRepo entity.LeadRepositoryInterface,
	tx Transactor,
	publisher EventPublisher,
) *InterestService {
	if publisher == nil {
		publisher = queue.NoopProducer{}
	}
	return &InterestService{
		Repo:      repo,
		LeadRepo:  leadRepo,
		Tx:        tx,
		Publisher: publisher,
	}
}

func (s *InterestService) Save(ctx context.Context, d InterestDTO) (InterestDTO, error) {
	slog.DebugContext(ctx, "Request to save Interest", "category", d.Category.OrZero())

	if errs := ValidateInterest(d); len(errs) > 0 {
		return InterestDTO{}, newValidationError(interestEntityName, errs)
	}

	interest := InterestToEntity(d)
	interest.ID = entity.ID{}

	var saved *entity.Interest
	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkLead(ctx, d); err != nil {
			return err
		}
		var err error
		saved, err = s.Repo.Save(ctx, interest)
		return err
	})
	if err != nil {
		return InterestDTO{}, s.wrap("save interest", err)
	}

	out := InterestToDTO(saved)
	publishEvent(ctx, s.Publisher, interestEntityName, queue.ActionCreated, saved.ID, out)
	return out, nil
}

// Update fully replaces the stored row, lead reference included.
func (s *InterestService) Update(ctx context.Context, d InterestDTO) (InterestDTO, error) {
	slog.DebugContext(ctx, "Request to update Interest", "id", d.ID.String())

	if errs := ValidateInterest(d); len(errs) > 0 {
		return InterestDTO{}, newValidationError(interestEntityName, errs)
	}

	var saved *entity.Interest
	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkLead(ctx, d); err != nil {
			return err
		}
		var err error
		saved, err = s.Repo.Save(ctx, InterestToEntity(d))
		return err
	})
	if err != nil {
		return InterestDTO{}, s.wrap("update interest", err)
	}

	out := InterestToDTO(saved)
	publishEvent(ctx, s.Publisher, interestEntityName, queue.ActionUpdated, saved.ID, out)
	return out, nil
}

func (s *InterestService) PartialUpdate(ctx context.Context, d InterestDTO) (InterestDTO, bool, error) {
	slog.DebugContext(ctx, "Request to partially update Interest", "id", d.ID.String())

	if errs := ValidateInterestPatch(d); len(errs) > 0 {
		return InterestDTO{}, false, newValidationError(interestEntityName, errs)
	}
	id, ok := d.ID.Int64()
	if !ok {
		return InterestDTO{}, false, nil
	}

	var saved *entity.Interest
	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.Repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.checkLead(ctx, d); err != nil {
			return err
		}
		merged := PartialUpdateInterest(existing, d)
		if err := merged.Validate(); err != nil {
			return &DomainError{Code: "validation", Message: err.Error()}
		}
		saved, err = s.Repo.Save(ctx, merged)
		return err
	})
	if errors.Is(err, entity.ErrNotFound) {
		return InterestDTO{}, false, nil
	}
	if err != nil {
		return InterestDTO{}, false, s.wrap("partially update interest", err)
	}

	out := InterestToDTO(saved)
	publishEvent(ctx, s.Publisher, interestEntityName, queue.ActionUpdated, saved.ID, out)
	return out, true, nil
}

func (s *InterestService) FindAll(ctx context.Context, pageable entity.Pageable) (entity.Page[InterestDTO], error) {
	slog.DebugContext(ctx, "Request to get all Interests", "page", pageable.Page, "size", pageable.Size)

	page, err := s.Repo.FindAll(ctx, pageable)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidSort) {
			return entity.Page[InterestDTO]{}, err
		}
		return entity.Page[InterestDTO]{}, databaseError("list interests", err)
	}
	return entity.MapPage(page, InterestToDTO), nil
}

func (s *InterestService) FindOne(ctx context.Context, id int64) (InterestDTO, bool, error) {
	slog.DebugContext(ctx, "Request to get Interest", "id", id)

	interest, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return InterestDTO{}, false, nil
	}
	if err != nil {
		return InterestDTO{}, false, databaseError("find interest", err)
	}
	return InterestToDTO(interest), true, nil
}

func (s *InterestService) Exists(ctx context.Context, id int64) (bool, error) {
	ok, err := s.Repo.ExistsByID(ctx, id)
	if err != nil {
		return false, databaseError("check interest", err)
	}
	return ok, nil
}

func (s *InterestService) Delete(ctx context.Context, id int64) error {
	slog.DebugContext(ctx, "Request to delete Interest", "id", id)

	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.Repo.DeleteByID(ctx, id)
	})
	if err != nil {
		return databaseError("delete interest", err)
	}

	publishEvent(ctx, s.Publisher, interestEntityName, queue.ActionDeleted, entity.NewID(id), nil)
	return nil
}

// checkLead rejects a reference to a lead that does not exist.
func (s *InterestService) checkLead(ctx context.Context, d InterestDTO) error {
	leadID, ok := d.leadID()
	if !ok {
		return nil
	}
	exists, err := s.LeadRepo.ExistsByID(ctx, leadID)
	if err != nil {
		return err
	}
	if !exists {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (s *InterestService) wrap(msg string, err error) error {
	if IsDomainError(err) {
		return err
	}
	if errors.Is(err, entity.ErrNotFound) {
		return errIDNotFound()
	}
	if errors.Is(err, entity.ErrLeadNotFound) {
		return &DomainError{
			Code:    "leadnotfound",
			Message: "Referenced lead does not exist",
		}
	}
	return databaseError(msg, err)
}
