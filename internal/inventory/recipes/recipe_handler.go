package recipes

import (
	"net/http"

	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"
	"github.com/hopeIsCo0l/AnuTest/pkg/roles"
	"github.com/hopeIsCo0l/AnuTest/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RecipeHandler struct {
	service *RecipeService
}

func NewRecipeHandler(s *RecipeService) *RecipeHandler {
	return &RecipeHandler{service: s}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes", security.Authorize(roles.Staff), h.GetRecipes)
	router.GET("/recipes/:productId", security.Authorize(roles.Staff), h.GetRecipe)
	router.PUT("/recipes/:productId", security.Authorize(roles.Admin), h.UpsertRecipe)
}

func (h *RecipeHandler) GetRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List())
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.service.Get(c.Param("productId"))
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to fetch recipe", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) UpsertRecipe(c *gin.Context) {
	var req upsertRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	recipe := models.Recipe{
		ProductID:          c.Param("productId"),
		ProcessTimeMinutes: req.ProcessTimeMinutes,
		Ingredients:        make([]models.Ingredient, 0, len(req.Ingredients)),
	}
	for _, line := range req.Ingredients {
		quantity := decimal.Zero
		if line.Quantity != nil {
			quantity = *line.Quantity
		}
		recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{RawMaterialID: line.RawMaterialID, Quantity: quantity})
	}

	view, err := h.service.UpsertRecipe(security.ActorName(c), recipe)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to save recipe", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}
