package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipebox/internal/model"
	"recipebox/internal/service"
)

// IngredientHandler handles ingredient endpoints. Ingredients have no delete
// endpoint; orphaned rows stay around for reuse.
type IngredientHandler struct {
	referenceService service.ReferenceService
}

// NewIngredientHandler creates a new ingredient handler.
func NewIngredientHandler(referenceService service.ReferenceService) *IngredientHandler {
	return &IngredientHandler{referenceService: referenceService}
}

// List godoc
// @Summary List the user's ingredients
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ReferenceResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /ingredients [get]
func (h *IngredientHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	ingredients, err := h.referenceService.List(c.Request().Context(), userID, model.KindIngredient)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReferenceResponses(ingredients))
}

// Update godoc
// @Summary Rename an ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Param request body RenameReferenceRequest true "New name"
// @Success 200 {object} ReferenceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [patch]
func (h *IngredientHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	ingredientID, err := referenceIDParam(c)
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

	ingredient, err := h.referenceService.Rename(c.Request().Context(), userID, model.KindIngredient, ingredientID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ReferenceResponse{ID: ingredient.ID, Name: ingredient.Name})
}
