package controllers

import (
	"net/http"
	"strconv"

	"triplog/internal/repositories"
	"triplog/internal/services"
	"triplog/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SearchController struct {
	searchService services.SearchServiceInterface
}

func NewSearchController(searchService services.SearchServiceInterface) *SearchController {
	return &SearchController{searchService: searchService}
}

func (ctrl *SearchController) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	var scope repositories.SearchScope
	if raw := c.Query("trip_id"); raw != "" {
		tripID, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid trip_id parameter")
			return
		}
		scope.TripID = &tripID
	}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid user_id parameter")
			return
		}
		scope.UserID = &userID
	}

	results, err := ctrl.searchService.Search(c.Request.Context(), query, scope, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, results, "")
}
