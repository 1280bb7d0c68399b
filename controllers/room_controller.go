package controllers

import (
	"net/http"

	"rental-backend/middleware"
	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.Rooms.GetAll(middleware.OwnerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := rc.Rooms.FindByID(middleware.OwnerID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	if err := rc.Rooms.Create(middleware.OwnerID(c), &room); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var patch services.RoomPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	room, err := rc.Rooms.Update(middleware.OwnerID(c), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := rc.Rooms.Delete(middleware.OwnerID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
