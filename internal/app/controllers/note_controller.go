package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/slgoiko/unirhub/internal/app/models/dto"
	"github.com/slgoiko/unirhub/internal/app/services"
	"github.com/slgoiko/unirhub/internal/middleware"
)

// NoteController handles note operations
type NoteController struct {
	noteService *services.NoteService
	logger      zerolog.Logger
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService *services.NoteService, logger zerolog.Logger) *NoteController {
	return &NoteController{
		noteService: noteService,
		logger:      logger,
	}
}

// CreateNote adds a note to a subject
// @Summary Add a note
// @Description Attaches a text note to a subject
// @Tags notes
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Subject ID"
// @Param request body dto.CreateNoteRequest true "Note content"
// @Success 201 {object} dto.APIResponse{data=models.Note}
// @Failure 400 {object} dto.ErrorResponse "Empty content"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /subjects/{id}/notes [post]
func (c *NoteController) CreateNote(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")))
		return
	}

	note, err := c.noteService.Add(ctx.Request.Context(), subjectID, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      note,
		Timestamp: time.Now(),
	})
}

// DeleteNote removes a note
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Security SessionAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{id} [delete]
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.noteService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Note deleted"},
		Timestamp: time.Now(),
	})
}
