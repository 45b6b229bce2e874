package cycle

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	cycleerrors "github.com/somprasongd/hr-payroll-sub000/internal/cycle/errors"
)

//go:generate mockgen -source=cycle_service.go -destination=mock/cycle_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, branchID, actorID string, req CreateCycleRequest) (CycleResponse, error)
	GetAll(ctx context.Context, branchID string) ([]CycleResponse, error)
	GetByID(ctx context.Context, branchID, id string) (CycleResponse, error)
	Finalize(ctx context.Context, branchID, actorID, id string) (CycleResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

// Create opens a new cycle. Uniqueness of the open cycle per branch and
// kind is enforced by the partial unique index, so a concurrent second
// create surfaces here as a constraint violation, not a race.
func (s *service) Create(
	ctx context.Context,
	branchID, actorID string,
	req CreateCycleRequest,
) (CycleResponse, error) {
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return CycleResponse{}, cycleerrors.ErrInvalidBranchID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return CycleResponse{}, cycleerrors.ErrInvalidActorID
	}
	if !IsValidKind(req.Kind) {
		return CycleResponse{}, cycleerrors.ErrInvalidKind
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CycleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c := &PayrollCycle{
		ID:        uuid.New(),
		BranchID:  branchUUID,
		Kind:      req.Kind,
		Status:    StatusPending,
		Note:      req.Note,
		CreatedBy: actorUUID,
	}

	if err := qtx.Create(ctx, c); err != nil {
		if isOpenCycleViolation(err) {
			return CycleResponse{}, cycleerrors.ErrOpenCycleExists
		}
		return CycleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CycleResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context, branchID string) ([]CycleResponse, error) {
	cycles, err := s.repo.FindAllByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	resp := make([]CycleResponse, len(cycles))
	for i, c := range cycles {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, branchID, id string) (CycleResponse, error) {
	c, err := s.repo.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CycleResponse{}, cycleerrors.ErrCycleNotFound
		}
		return CycleResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) Finalize(ctx context.Context, branchID, actorID, id string) (CycleResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return CycleResponse{}, cycleerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CycleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CycleResponse{}, cycleerrors.ErrCycleNotFound
		}
		return CycleResponse{}, err
	}

	if c.Status != StatusPending {
		return CycleResponse{}, cycleerrors.ErrFinalizeOnlyPending
	}

	now := time.Now().UTC()
	c.Status = StatusFinalized
	c.FinalizedBy = &actorUUID
	c.FinalizedAt = &now

	if err := qtx.Update(ctx, c); err != nil {
		return CycleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CycleResponse{}, err
	}

	return mapToResponse(*c), nil
}

func isOpenCycleViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_open_cycle"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_open_cycle")
}

func mapToResponse(c PayrollCycle) CycleResponse {
	resp := CycleResponse{
		ID:        c.ID.String(),
		BranchID:  c.BranchID.String(),
		Kind:      c.Kind,
		Status:    c.Status,
		Note:      c.Note,
		CreatedBy: c.CreatedBy.String(),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}

	if c.FinalizedBy != nil {
		v := c.FinalizedBy.String()
		resp.FinalizedBy = &v
	}
	if c.FinalizedAt != nil {
		v := c.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &v
	}

	return resp
}
