package controllers

import (
	"net/http"

	"triplog/internal/services"
	"triplog/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PlacesController struct {
	placeService   services.PlaceServiceInterface
	refreshService services.RefreshServiceInterface
}

func NewPlacesController(
	placeService services.PlaceServiceInterface,
	refreshService services.RefreshServiceInterface,
) *PlacesController {
	return &PlacesController{
		placeService:   placeService,
		refreshService: refreshService,
	}
}

func (ctrl *PlacesController) GetPlace(c *gin.Context) {
	googlePlaceID := c.Param("googlePlaceId")
	if googlePlaceID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Place id is required")
		return
	}

	place, err := ctrl.placeService.GetPlaceByGoogleID(c.Request.Context(), googlePlaceID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, place, "")
}

func (ctrl *PlacesController) RefreshStalePlaces(c *gin.Context) {
	report, err := ctrl.refreshService.RefreshStalePlaces(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Stale place refresh complete")
}
