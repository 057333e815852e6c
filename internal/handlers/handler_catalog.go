package handlers

import (
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"github.com/SscSPs/clonewander/internal/dto"
	"github.com/gin-gonic/gin"
)

type catalogHandler struct {
	catalogService portssvc.CatalogSvc
}

func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvc) {
	h := &catalogHandler{catalogService: catalogService}

	catalog := rg.Group("/catalog")
	{
		catalog.GET("/packs", h.listPacks)
		catalog.GET("/travel-estimate", h.estimateTravel)
	}
}

// listPacks godoc
// @Summary List adventure packs
// @Description Lists the adventure packs a clone can be dispatched with
// @Tags catalog
// @Produce  json
// @Success 200 {object} dto.ListPacksResponse
// @Router /catalog/packs [get]
func (h *catalogHandler) listPacks(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ListPacksResponse{Packs: h.catalogService.ListPacks()})
}

// estimateTravel godoc
// @Summary Estimate travel time
// @Description Estimates simulated travel hours to a destination and how long that takes in real time
// @Tags catalog
// @Produce  json
// @Param   destination query string true "Destination"
// @Success 200 {object} dto.TravelEstimateResponse
// @Failure 400 {object} map[string]string "Destination is required"
// @Router /catalog/travel-estimate [get]
func (h *catalogHandler) estimateTravel(c *gin.Context) {
	destination := strings.TrimSpace(c.Query("destination"))
	if destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination query parameter is required"})
		return
	}
	c.JSON(http.StatusOK, h.catalogService.EstimateTravel(destination))
}
