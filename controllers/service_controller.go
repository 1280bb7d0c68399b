package controllers

import (
	"net/http"

	"rental-backend/middleware"
	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type ServiceController struct {
	Catalog *services.CatalogService
}

func NewServiceController(catalog *services.CatalogService) *ServiceController {
	return &ServiceController{Catalog: catalog}
}

func (sc *ServiceController) GetServices(c *gin.Context) {
	list, err := sc.Catalog.GetAll(middleware.OwnerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (sc *ServiceController) GetService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	service, err := sc.Catalog.FindByID(middleware.OwnerID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, service)
}

func (sc *ServiceController) CreateService(c *gin.Context) {
	var service models.Service
	if err := c.ShouldBindJSON(&service); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	if err := sc.Catalog.Create(middleware.OwnerID(c), &service); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, service)
}

func (sc *ServiceController) UpdateService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var patch models.Service
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	service, err := sc.Catalog.Update(middleware.OwnerID(c), id, &patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, service)
}

func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := sc.Catalog.Delete(middleware.OwnerID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
