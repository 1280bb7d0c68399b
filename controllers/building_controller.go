package controllers

import (
	"net/http"
	"strconv"

	"rental-backend/middleware"
	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type BuildingController struct {
	Buildings *services.BuildingService
}

func NewBuildingController(buildings *services.BuildingService) *BuildingController {
	return &BuildingController{Buildings: buildings}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (bc *BuildingController) GetBuildings(c *gin.Context) {
	buildings, err := bc.Buildings.GetAll(middleware.OwnerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, buildings)
}

func (bc *BuildingController) GetBuilding(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	building, err := bc.Buildings.FindByID(middleware.OwnerID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, building)
}

func (bc *BuildingController) CreateBuilding(c *gin.Context) {
	var building models.Building
	if err := c.ShouldBindJSON(&building); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	if err := bc.Buildings.Create(middleware.OwnerID(c), &building); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, building)
}

type buildingPatch struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (bc *BuildingController) UpdateBuilding(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var patch buildingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	building, err := bc.Buildings.Update(middleware.OwnerID(c), id, patch.Name, patch.Address)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, building)
}

func (bc *BuildingController) DeleteBuilding(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := bc.Buildings.Delete(middleware.OwnerID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
