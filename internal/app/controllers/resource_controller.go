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

// ResourceController handles resource operations: Drive-backed file uploads,
// link resources, downloads and deletion.
type ResourceController struct {
	resourceService *services.ResourceService
	logger          zerolog.Logger
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService *services.ResourceService, logger zerolog.Logger) *ResourceController {
	return &ResourceController{
		resourceService: resourceService,
		logger:          logger,
	}
}

// UploadResources uploads files into a subject category
// @Summary Upload resource files
// @Description Uploads one or more files to Drive under the subject's category folder. Files succeed or fail independently.
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security SessionAuth
// @Param id path int true "Subject ID"
// @Param category formData string true "Resource category (apuntes, ejercicios, examenes)"
// @Param title_prefix formData string false "Optional title prefix"
// @Param files formData file true "Files to upload"
// @Success 200 {object} dto.APIResponse{data=dto.UploadResult}
// @Failure 400 {object} dto.ErrorResponse "Missing files or category"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 502 {object} dto.ErrorResponse "Drive unavailable"
// @Router /subjects/{id}/resources [post]
func (c *ResourceController) UploadResources(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx, "id")
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

	category := ctx.PostForm("category")
	titlePrefix := ctx.PostForm("title_prefix")

	result, err := c.resourceService.Upload(ctx.Request.Context(), token, subjectID, category, titlePrefix, files)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("subjectID", subjectID).
		Str("category", category).
		Int("uploaded", result.Uploaded).
		Int("failed", len(result.Failed)).
		Msg("Resource upload finished")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// CreateLink saves a URL resource
// @Summary Add a link
// @Description Records a URL resource under the subject's links category
// @Tags resources
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Subject ID"
// @Param request body dto.CreateLinkRequest true "Link to save"
// @Success 201 {object} dto.APIResponse{data=models.Resource}
// @Failure 400 {object} dto.ErrorResponse "Missing title or url"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /subjects/{id}/links [post]
func (c *ResourceController) CreateLink(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateLinkRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")))
		return
	}

	resource, err := c.resourceService.AddLink(ctx.Request.Context(), subjectID, req.Title, req.URL)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      resource,
		Timestamp: time.Now(),
	})
}

// DownloadResource streams a file resource back to the client
// @Summary Download a resource
// @Description Fetches the file from Drive and returns it as an attachment. Link resources cannot be downloaded.
// @Tags resources
// @Produce octet-stream
// @Security SessionAuth
// @Param id path int true "Resource ID"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse "Resource is a link"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Failure 502 {object} dto.ErrorResponse "Drive unavailable"
// @Router /resources/{id}/download [get]
func (c *ResourceController) DownloadResource(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	token, ok := middleware.TokenFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	resource, data, err := c.resourceService.Download(ctx.Request.Context(), token, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+resource.Title+`"`)
	ctx.Data(http.StatusOK, "application/octet-stream", data)
}

// DeleteResource removes a resource
// @Summary Delete a resource
// @Description Deletes the resource row. For file resources the Drive copy is removed best-effort first.
// @Tags resources
// @Produce json
// @Security SessionAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /resources/{id} [delete]
func (c *ResourceController) DeleteResource(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	token, ok := middleware.TokenFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	if err := c.resourceService.Delete(ctx.Request.Context(), token, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Resource deleted"},
		Timestamp: time.Now(),
	})
}
