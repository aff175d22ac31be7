package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/slgoiko/unirhub/internal/app/models/dto"
	"github.com/slgoiko/unirhub/internal/app/services"
	"github.com/slgoiko/unirhub/internal/middleware"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
)

// ActivityController handles activity operations
type ActivityController struct {
	activityService *services.ActivityService
	logger          zerolog.Logger
}

// NewActivityController creates a new ActivityController
func NewActivityController(activityService *services.ActivityService, logger zerolog.Logger) *ActivityController {
	return &ActivityController{
		activityService: activityService,
		logger:          logger,
	}
}

// CreateActivity creates an activity under a subject
// @Summary Create an activity
// @Description Creates an activity with an optional due date (YYYY-MM-DD)
// @Tags activities
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Subject ID"
// @Param request body dto.CreateActivityRequest true "Activity to create"
// @Success 201 {object} dto.APIResponse{data=models.Activity}
// @Failure 400 {object} dto.ErrorResponse "Missing title or malformed due date"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /subjects/{id}/activities [post]
func (c *ActivityController) CreateActivity(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")))
		return
	}

	activity, err := c.activityService.Create(ctx.Request.Context(), subjectID, req.Title, req.Description, req.DueDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      activity,
		Timestamp: time.Now(),
	})
}

// GetActivity returns an activity with its attachments
// @Summary Get an activity
// @Tags activities
// @Produce json
// @Security SessionAuth
// @Param id path int true "Activity ID"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityDetail}
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Router /activities/{id} [get]
func (c *ActivityController) GetActivity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	activity, files, err := c.activityService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ActivityDetail{
			Activity: *activity,
			Files:    files,
		},
		Timestamp: time.Now(),
	})
}

// ToggleActivity flips the completion flag
// @Summary Toggle completion
// @Description Marks a pending activity done, or a done activity pending, and returns the new state
// @Tags activities
// @Produce json
// @Security SessionAuth
// @Param id path int true "Activity ID"
// @Success 200 {object} dto.APIResponse "data carries {\"is_completed\": bool}"
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Router /activities/{id}/toggle [post]
func (c *ActivityController) ToggleActivity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	completed, err := c.activityService.Toggle(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"is_completed": completed},
		Timestamp: time.Now(),
	})
}

// GradeActivity records the grade and comments
// @Summary Grade an activity
// @Description Sets the grade and comments. An empty grade clears it.
// @Tags activities
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Activity ID"
// @Param request body dto.GradeActivityRequest true "Grade and comments"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Router /activities/{id}/grade [put]
func (c *ActivityController) GradeActivity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.GradeActivityRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")))
		return
	}

	if err := c.activityService.SetGrade(ctx.Request.Context(), id, req.Grade, req.Comments); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Activity graded"},
		Timestamp: time.Now(),
	})
}

// AttachActivityFiles uploads attachments for an activity
// @Summary Attach files
// @Description Uploads files to the subject's activities folder in Drive. Files succeed or fail independently.
// @Tags activities
// @Accept multipart/form-data
// @Produce json
// @Security SessionAuth
// @Param id path int true "Activity ID"
// @Param files formData file true "Files to attach"
// @Success 200 {object} dto.APIResponse{data=dto.UploadResult}
// @Failure 400 {object} dto.ErrorResponse "No files provided"
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Failure 502 {object} dto.ErrorResponse "Drive unavailable"
// @Router /activities/{id}/files [post]
func (c *ActivityController) AttachActivityFiles(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	token, ok := middleware.TokenFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	files, cleanup, err := stageUploads(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to stage uploaded files")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid or missing files")))
		return
	}
	defer cleanup()

	result, err := c.activityService.AttachFiles(ctx.Request.Context(), token, id, files)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("activityID", id).
		Int("uploaded", result.Uploaded).
		Int("failed", len(result.Failed)).
		Msg("Activity attachment upload finished")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// DeleteActivity removes an activity and its attachments
// @Summary Delete an activity
// @Description Deletes the activity. Drive attachments are removed best-effort; the rows go with the activity.
// @Tags activities
// @Produce json
// @Security SessionAuth
// @Param id path int true "Activity ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Router /activities/{id} [delete]
func (c *ActivityController) DeleteActivity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	token, ok := middleware.TokenFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	if err := c.activityService.Delete(ctx.Request.Context(), token, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Activity deleted"},
		Timestamp: time.Now(),
	})
}
