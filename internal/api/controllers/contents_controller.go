package controllers

import (
	"fmt"
	"net/http"

	"triplog/internal/models/request_models"
	"triplog/internal/models/response_models"
	"triplog/internal/services"
	"triplog/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ContentsController struct {
	contentService   services.ContentServiceInterface
	enrichService    services.EnrichmentServiceInterface
	embeddingService services.EmbeddingServiceInterface
}

func NewContentsController(
	contentService services.ContentServiceInterface,
	enrichService services.EnrichmentServiceInterface,
	embeddingService services.EmbeddingServiceInterface,
) *ContentsController {
	return &ContentsController{
		contentService:   contentService,
		enrichService:    enrichService,
		embeddingService: embeddingService,
	}
}

func (ctrl *ContentsController) CreateContent(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	content, err := ctrl.contentService.CreateContent(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": content.ID.String()}, "Content created")
}

func (ctrl *ContentsController) EnrichContent(c *gin.Context) {
	contentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userIDStr := c.GetString("user_id")

	var req request_models.EnrichContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcomes, err := ctrl.enrichService.EnrichFromRequest(c.Request.Context(), contentID, userIDStr, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp := response_models.EnrichContentResponse{Total: len(outcomes)}
	for _, outcome := range outcomes {
		result := response_models.PinResult{
			Name:     outcome.Location.Name,
			Category: outcome.Location.Classification,
		}
		if outcome.Err != nil {
			result.Error = outcome.Err.Error()
		} else if outcome.Pin != nil {
			resp.Pinned++
			pinID := outcome.Pin.ID.String()
			result.PinID = &pinID
			if outcome.Pin.PlaceRecordID != nil {
				placeID := outcome.Pin.PlaceRecordID.String()
				result.PlaceID = &placeID
			}
		}
		resp.Results = append(resp.Results, result)
	}
	// Partial success is a valid outcome, reported per location.
	resp.Message = fmt.Sprintf("%d of %d locations pinned", resp.Pinned, resp.Total)

	utils.RespondSuccess(c, resp, resp.Message)
}

func (ctrl *ContentsController) IndexContent(c *gin.Context) {
	contentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.embeddingService.IndexContent(c.Request.Context(), contentID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Content indexed")
}

func (ctrl *ContentsController) ListPins(c *gin.Context) {
	contentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	pins, err := ctrl.contentService.ListPins(c.Request.Context(), contentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pins, "")
}

func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}
	return id, true
}

func requestUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Missing user identity")
		return uuid.Nil, false
	}
	return userID, true
}
