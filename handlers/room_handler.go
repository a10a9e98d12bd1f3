package handlers

import (
	"net/http"
	"strconv"

	roomRepo "grandstay/database/repository/room"
	"grandstay/models"
	bookingSvc "grandstay/services/booking"
	roomSvc "grandstay/services/room"
	"grandstay/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// RoomHandler serves the room inventory and availability endpoints.
type RoomHandler struct {
	Rooms    roomSvc.RoomService
	Bookings bookingSvc.BookingService
}

func NewRoomHandler(rooms roomSvc.RoomService, bookings bookingSvc.BookingService) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Bookings: bookings}
}

// List handles GET /rooms.
func (h *RoomHandler) List(c *gin.Context) {
	filter := roomRepo.RoomFilter{
		Type:          models.RoomType(c.Query("type")),
		AvailableOnly: c.Query("available") == "true",
	}
	if v := c.Query("minCapacity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "minCapacity must be an integer")
			return
		}
		filter.MinCapacity = n
	}

	rooms, err := h.Rooms.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Rooms", rooms)
}

// Get handles GET /rooms/:id.
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.Rooms.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Room", room)
}

// Availability handles GET /rooms/availability?roomId=...&from=...&to=...
func (h *RoomHandler) Availability(c *gin.Context) {
	roomID := c.Query("roomId")
	if roomID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "roomId is required")
		return
	}
	from, err := parseDate(c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "from must be YYYY-MM-DD")
		return
	}
	// Omitting "to" asks about the single night starting at "from".
	to := from
	if v := c.Query("to"); v != "" {
		if to, err = parseDate(v); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "to must be YYYY-MM-DD")
			return
		}
	}

	result, err := h.Bookings.Availability(c.Request.Context(), roomID, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Availability", result)
}

// Create handles POST /admin/rooms.
func (h *RoomHandler) Create(c *gin.Context) {
	var in roomSvc.CreateRoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	room, err := h.Rooms.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Room created", room)
}

// Update handles PUT /admin/rooms/:id.
func (h *RoomHandler) Update(c *gin.Context) {
	var in struct {
		RoomNumber   *string   `json:"roomNumber"`
		Type         *string   `json:"type"`
		NightlyPrice *float64  `json:"nightlyPrice"`
		Capacity     *int      `json:"capacity"`
		Amenities    *[]string `json:"amenities"`
		Available    *bool     `json:"available"`
		Description  *string   `json:"description"`
		Images       *[]string `json:"images"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	updates := bson.M{}
	if in.RoomNumber != nil {
		updates["room_number"] = *in.RoomNumber
	}
	if in.Type != nil {
		updates["type"] = *in.Type
	}
	if in.NightlyPrice != nil {
		updates["nightly_price"] = *in.NightlyPrice
	}
	if in.Capacity != nil {
		updates["capacity"] = *in.Capacity
	}
	if in.Amenities != nil {
		updates["amenities"] = *in.Amenities
	}
	if in.Available != nil {
		updates["available"] = *in.Available
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Images != nil {
		updates["images"] = *in.Images
	}

	room, err := h.Rooms.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Room updated", room)
}

// Delete handles DELETE /admin/rooms/:id.
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.Rooms.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Room deleted", nil)
}

// SetHousekeeping handles PUT /admin/rooms/:id/housekeeping.
func (h *RoomHandler) SetHousekeeping(c *gin.Context) {
	var in struct {
		Status models.HousekeepingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	room, err := h.Rooms.SetHousekeeping(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Housekeeping status updated", room)
}
