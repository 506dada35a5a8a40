package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"recipebox/internal/model"
	"recipebox/internal/service"
)

// RecipeHandler handles recipe endpoints.
type RecipeHandler struct {
	recipeService service.RecipeService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipeService service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// RefSpec names a tag or ingredient to attach to a recipe.
type RefSpec struct {
	Name string `json:"name" validate:"required"`
}

// CreateRecipeRequest represents a recipe create request. Required scalars
// are pointers so the service can report every missing field in one
// validation error instead of failing on the first.
type CreateRecipeRequest struct {
	Title       *string          `json:"title"`
	TimeMinute  *int             `json:"time_minute"`
	Price       *decimal.Decimal `json:"price"`
	Desc        string           `json:"desc"`
	Link        string           `json:"link"`
	Tags        *[]RefSpec       `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]RefSpec       `json:"ingredients" validate:"omitempty,dive"`
}

// UpdateRecipeRequest represents a partial recipe update. Absent fields stay
// untouched; an explicit empty tags or ingredients list clears the links.
type UpdateRecipeRequest struct {
	Title       *string          `json:"title"`
	TimeMinute  *int             `json:"time_minute"`
	Price       *decimal.Decimal `json:"price"`
	Desc        *string          `json:"desc"`
	Link        *string          `json:"link"`
	Tags        *[]RefSpec       `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]RefSpec       `json:"ingredients" validate:"omitempty,dive"`
}

// ReferenceResponse is the wire shape of a tag or ingredient.
type ReferenceResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeResponse is the summary representation used in listings.
type RecipeResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinute  int                 `json:"time_minute"`
	Price       decimal.Decimal     `json:"price"`
	Link        string              `json:"link"`
	Tags        []ReferenceResponse `json:"tags"`
	Ingredients []ReferenceResponse `json:"ingredients"`
}

// RecipeDetailResponse adds the description to the summary representation.
type RecipeDetailResponse struct {
	RecipeResponse
	Desc string `json:"desc"`
}

func toRecipeResponse(recipe *model.Recipe) RecipeResponse {
	tags := make([]ReferenceResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, ReferenceResponse{ID: tag.ID, Name: tag.Name})
	}
	ingredients := make([]ReferenceResponse, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, ReferenceResponse{ID: ingredient.ID, Name: ingredient.Name})
	}
	return RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinute:  recipe.TimeMinute,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func toRecipeDetailResponse(recipe *model.Recipe) RecipeDetailResponse {
	return RecipeDetailResponse{
		RecipeResponse: toRecipeResponse(recipe),
		Desc:           recipe.Desc,
	}
}

func specNames(specs *[]RefSpec) *[]string {
	if specs == nil {
		return nil
	}
	names := make([]string, 0, len(*specs))
	for _, spec := range *specs {
		names = append(names, spec.Name)
	}
	return &names
}

func recipeIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid recipe id")
	}
	return uint(id), nil
}

// List godoc
// @Summary List the user's recipes
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} RecipeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	recipes, err := h.recipeService.List(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, toRecipeResponse(&recipes[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a recipe with its description
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} RecipeDetailResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recipeID, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	recipe, err := h.recipeService.Get(c.Request().Context(), userID, recipeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRecipeDetailResponse(recipe))
}

// Create godoc
// @Summary Create a recipe with optional tags and ingredients
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecipeRequest true "Recipe data"
// @Success 201 {object} RecipeDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.recipeService.Create(c.Request().Context(), userID, service.CreateRecipeInput{
		Title:       req.Title,
		TimeMinute:  req.TimeMinute,
		Price:       req.Price,
		Desc:        req.Desc,
		Link:        req.Link,
		Tags:        specNames(req.Tags),
		Ingredients: specNames(req.Ingredients),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toRecipeDetailResponse(recipe))
}

// Update godoc
// @Summary Partially update a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body UpdateRecipeRequest true "Changed fields"
// @Success 200 {object} RecipeDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [patch]
func (h *RecipeHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recipeID, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.recipeService.Update(c.Request().Context(), userID, recipeID, service.UpdateRecipeInput{
		Title:       req.Title,
		TimeMinute:  req.TimeMinute,
		Price:       req.Price,
		Desc:        req.Desc,
		Link:        req.Link,
		Tags:        specNames(req.Tags),
		Ingredients: specNames(req.Ingredients),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRecipeDetailResponse(recipe))
}

// Delete godoc
// @Summary Delete a recipe
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recipeID, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	if err := h.recipeService.Delete(c.Request().Context(), userID, recipeID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
