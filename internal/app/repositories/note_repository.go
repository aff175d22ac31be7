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

// NoteRepository handles database operations for Note.
type NoteRepository struct {
	DB *pgxpool.Pool
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{DB: db}
}

// Create inserts a new note.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	sql, args, err := squirrel.Insert("notes").
		Columns("subject_id", "content").
		Values(note.SubjectID, note.Content).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return err
	}

	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&note.ID, &note.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create note query")
		return err
	}

	return nil
}

// GetByID retrieves a single note by its ID.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	sql, args, err := squirrel.Select("id", "subject_id", "content", "created_at").
		From("notes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by ID SQL")
		return nil, err
	}

	var note models.Note
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&note.ID, &note.SubjectID, &note.Content, &note.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note")
		return nil, err
	}

	return &note, nil
}

// GetBySubjectID retrieves the notes of a subject, newest first.
func (r *NoteRepository) GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Note, error) {
	sql, args, err := squirrel.Select("id", "subject_id", "content", "created_at").
		From("notes").
		Where(squirrel.Eq{"subject_id": subjectID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get notes by subject SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get notes by subject query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.SubjectID, &note.Content, &note.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning one note during get by subject")
			continue
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through note rows")
		return nil, err
	}

	return notes, nil
}

// Delete deletes a note by its ID.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("notes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete note SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete note query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}
