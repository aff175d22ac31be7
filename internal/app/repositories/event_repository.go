package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slgoiko/unirhub/internal/app/models"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
	"github.com/slgoiko/unirhub/internal/pkg/logger"
)

// EventWithSubject joins an event with the name of its owning subject, when any.
type EventWithSubject struct {
	models.Event
	SubjectName *string
}

// EventRepository handles database operations for Event.
type EventRepository struct {
	DB *pgxpool.Pool
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{DB: db}
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	sql, args, err := squirrel.Insert("events").
		Columns("subject_id", "title", "start_time", "end_time", "description").
		Values(event.SubjectID, event.Title, event.StartTime, event.EndTime, event.Description).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create event SQL")
		return err
	}

	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&event.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create event query")
		return err
	}

	return nil
}

// GetByID retrieves a single event by its ID.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := squirrel.Select("id", "subject_id", "title", "start_time", "end_time", "description", "google_event_id").
		From("events").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get event by ID SQL")
		return nil, err
	}

	var event models.Event
	err = r.DB.QueryRow(ctx, sql, args...).Scan(
		&event.ID, &event.SubjectID, &event.Title, &event.StartTime,
		&event.EndTime, &event.Description, &event.GoogleEventID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Msg("Error scanning event")
		return nil, err
	}

	return &event, nil
}

// GetBySubjectID retrieves the events of a subject ordered by start time.
func (r *EventRepository) GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Event, error) {
	sql, args, err := squirrel.Select("id", "subject_id", "title", "start_time", "end_time", "description", "google_event_id").
		From("events").
		Where(squirrel.Eq{"subject_id": subjectID}).
		OrderBy("start_time ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get events by subject SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get events by subject query")
		return nil, err
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID, &event.SubjectID, &event.Title, &event.StartTime,
			&event.EndTime, &event.Description, &event.GoogleEventID,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one event during get by subject")
			continue
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through event rows")
		return nil, err
	}

	return events, nil
}

// GetAllWithSubject retrieves every event joined with its subject name for the
// calendar view, ordered by start time.
func (r *EventRepository) GetAllWithSubject(ctx context.Context) ([]*EventWithSubject, error) {
	sql, args, err := squirrel.Select(
		"e.id", "e.subject_id", "e.title", "e.start_time", "e.end_time",
		"e.description", "e.google_event_id", "s.name",
	).
		From("events e").
		LeftJoin("subjects s ON e.subject_id = s.id").
		OrderBy("e.start_time ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all events SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all events query")
		return nil, err
	}
	defer rows.Close()

	events := make([]*EventWithSubject, 0)
	for rows.Next() {
		var event EventWithSubject
		err := rows.Scan(
			&event.ID, &event.SubjectID, &event.Title, &event.StartTime,
			&event.EndTime, &event.Description, &event.GoogleEventID, &event.SubjectName,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one event during get all")
			continue
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through event rows")
		return nil, err
	}

	return events, nil
}

// SetGoogleEventID records the external calendar identifier after a sync.
func (r *EventRepository) SetGoogleEventID(ctx context.Context, id int64, googleEventID string) error {
	sql, args, err := squirrel.Update("events").
		Set("google_event_id", googleEventID).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set google event ID SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing set google event ID query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// Delete deletes an event by its ID. The calendar copy, if any, stays; event
// deletion is not synced.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("events").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete event SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete event query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}
