package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"recipebox/internal/model"
	"recipebox/internal/service"
)

// TagHandler handles tag endpoints.
type TagHandler struct {
	referenceService service.ReferenceService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(referenceService service.ReferenceService) *TagHandler {
	return &TagHandler{referenceService: referenceService}
}

// RenameReferenceRequest represents a tag or ingredient rename.
type RenameReferenceRequest struct {
	Name string `json:"name" validate:"required"`
}

func referenceIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func toReferenceResponses(refs []model.Reference) []ReferenceResponse {
	resp := make([]ReferenceResponse, 0, len(refs))
	for _, ref := range refs {
		resp = append(resp, ReferenceResponse{ID: ref.ID, Name: ref.Name})
	}
	return resp
}

// List godoc
// @Summary List the user's tags
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ReferenceResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	tags, err := h.referenceService.List(c.Request().Context(), userID, model.KindTag)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReferenceResponses(tags))
}

// Update godoc
// @Summary Rename a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param request body RenameReferenceRequest true "New name"
// @Success 200 {object} ReferenceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{id} [patch]
func (h *TagHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	tagID, err := referenceIDParam(c)
	if err != nil {
		return err
	}

	var req RenameReferenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.referenceService.Rename(c.Request().Context(), userID, model.KindTag, tagID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ReferenceResponse{ID: tag.ID, Name: tag.Name})
}

// Delete godoc
// @Summary Delete a tag
// @Tags tags
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	tagID, err := referenceIDParam(c)
	if err != nil {
		return err
	}

	if err := h.referenceService.Delete(c.Request().Context(), userID, model.KindTag, tagID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
