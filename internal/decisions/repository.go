package decisions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/llmaniac/beacon/pkg/pagination"
	"github.com/llmaniac/beacon/pkg/repository"
)

const decisionColumns = "id, container_id, event, sender, properties, recorded_at"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a decision repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "decisions"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Record(ctx context.Context, cmd RecordCommand) (*Decision, error) {
	properties := cmd.Properties
	if properties == nil {
		properties = map[string]any{}
	}

	propertiesJSON, err := json.Marshal(properties)
	if err != nil {
		return nil, fmt.Errorf("marshal properties: %w", err)
	}

	insertQ := fmt.Sprintf(`
		INSERT INTO decisions(container_id, event, sender, properties)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, decisionColumns)

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Decision, error) {
		return repository.QueryOne(
			ctx, tx, insertQ,
			[]any{cmd.ContainerID, cmd.Event, cmd.Sender, propertiesJSON},
			scanDecision,
		)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("decision recorded",
		"id", d.ID,
		"container_id", d.ContainerID,
		"event", d.Event,
	)
	return &d, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Decision, error) {
	q := fmt.Sprintf("SELECT %s FROM decisions WHERE id = $1", decisionColumns)

	d, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanDecision)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Decision], error) {
	page.Normalize(r.pagination)

	where, args := filters.clauses()

	var total int
	countQ := "SELECT COUNT(*) FROM decisions" + where
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count decisions: %w", err)
	}

	pageQ := fmt.Sprintf(
		"SELECT %s FROM decisions%s ORDER BY recorded_at DESC LIMIT $%d OFFSET $%d",
		decisionColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, page.PageSize, page.Offset())

	items, err := repository.QueryMany(ctx, r.db, pageQ, args, scanDecision)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (f Filters) clauses() (string, []any) {
	var conditions []string
	var args []any

	if f.ContainerID != "" {
		args = append(args, f.ContainerID)
		conditions = append(conditions, fmt.Sprintf("container_id = $%d", len(args)))
	}
	if f.Event != "" {
		args = append(args, f.Event)
		conditions = append(conditions, fmt.Sprintf("event = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	where := " WHERE " + conditions[0]
	for _, condition := range conditions[1:] {
		where += " AND " + condition
	}
	return where, args
}

func scanDecision(s repository.Scanner) (Decision, error) {
	var d Decision
	var propertiesRaw []byte

	err := s.Scan(
		&d.ID,
		&d.ContainerID,
		&d.Event,
		&d.Sender,
		&propertiesRaw,
		&d.RecordedAt,
	)

	if err != nil {
		return d, err
	}

	if len(propertiesRaw) > 0 {
		if err := json.Unmarshal(propertiesRaw, &d.Properties); err != nil {
			return d, fmt.Errorf("unmarshal properties: %w", err)
		}
	}

	if d.Properties == nil {
		d.Properties = map[string]any{}
	}

	return d, nil
}
