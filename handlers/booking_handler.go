package handlers

import (
	"net/http"
	"strconv"

	bookingRepo "grandstay/database/repository/booking"
	"grandstay/middleware"
	"grandstay/models"
	bookingSvc "grandstay/services/booking"
	roomSvc "grandstay/services/room"
	"grandstay/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the booking lifecycle endpoints.
type BookingHandler struct {
	Bookings bookingSvc.BookingService
	Rooms    roomSvc.RoomService
}

func NewBookingHandler(bookings bookingSvc.BookingService, rooms roomSvc.RoomService) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Rooms: rooms}
}

type createBookingRequest struct {
	RoomID          string `json:"roomId" binding:"required"`
	CheckIn         string `json:"checkIn" binding:"required"`
	CheckOut        string `json:"checkOut" binding:"required"`
	Guests          int    `json:"guests" binding:"required"`
	GuestName       string `json:"guestName"`
	ContactNumber   string `json:"contactNumber"`
	SpecialRequests string `json:"specialRequests"`
}

func (r *createBookingRequest) toInput(userID string) (bookingSvc.CreateBookingInput, error) {
	checkIn, err := parseDate(r.CheckIn)
	if err != nil {
		return bookingSvc.CreateBookingInput{}, err
	}
	checkOut, err := parseDate(r.CheckOut)
	if err != nil {
		return bookingSvc.CreateBookingInput{}, err
	}
	return bookingSvc.CreateBookingInput{
		UserID:          userID,
		RoomID:          r.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          r.Guests,
		GuestName:       r.GuestName,
		ContactNumber:   r.ContactNumber,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	in, err := req.toInput(middleware.CurrentUserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "dates must be YYYY-MM-DD")
		return
	}

	b, err := h.Bookings.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Booking created", b)
}

// Quote handles GET /bookings/quote: a dry-run price breakdown with no writes.
func (h *BookingHandler) Quote(c *gin.Context) {
	checkIn, err := parseDate(c.Query("checkIn"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(c.Query("checkOut"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "checkOut must be YYYY-MM-DD")
		return
	}
	guests := 1
	if v := c.Query("guests"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "guests must be a positive integer")
			return
		}
		guests = n
	}
	if !checkOut.After(checkIn) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "checkOut must be after checkIn")
		return
	}

	room, err := h.Rooms.GetByID(c.Request.Context(), c.Query("roomId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	quote := bookingSvc.Quote(room.NightlyPrice, room.Capacity, checkIn, checkOut, guests)
	utils.JSONSuccess(c, http.StatusOK, "Price quote", quote)
}

// Get handles GET /bookings/:id. Guests see only their own bookings.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Bookings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	u := middleware.CurrentUser(c)
	if u != nil && !u.IsStaff() && b.UserID != u.ID {
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "booking does not belong to this user")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking", b)
}

// List handles GET /bookings. Guests are pinned to their own bookings;
// staff may filter across all of them.
func (h *BookingHandler) List(c *gin.Context) {
	filter := bookingRepo.ListFilter{
		Status: models.BookingStatus(c.Query("status")),
		RoomID: c.Query("roomId"),
	}

	u := middleware.CurrentUser(c)
	if u != nil && !u.IsStaff() {
		filter.UserID = u.ID
	} else if v := c.Query("userId"); v != "" {
		filter.UserID = v
	}

	if v := c.Query("from"); v != "" {
		from, err := parseDate(v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "from must be YYYY-MM-DD")
			return
		}
		filter.From = from
	}
	if v := c.Query("to"); v != "" {
		to, err := parseDate(v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "to must be YYYY-MM-DD")
			return
		}
		filter.To = to
	}

	bookings, err := h.Bookings.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Bookings", bookings)
}

// UpdateStatus handles PUT /bookings/:id/status (staff only).
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var in struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	b, err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking status updated", b)
}

// RequestCancellation handles POST /bookings/:id/request-cancel.
func (h *BookingHandler) RequestCancellation(c *gin.Context) {
	var in struct {
		Reason string `json:"reason"`
	}
	// Body is optional; a bare request carries no reason.
	_ = c.ShouldBindJSON(&in)

	b, err := h.Bookings.RequestCancellation(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), in.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Cancellation requested", b)
}

// ApproveCancellation handles POST /bookings/:id/approve-cancel (staff).
func (h *BookingHandler) ApproveCancellation(c *gin.Context) {
	b, err := h.Bookings.ApproveCancellation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Cancellation approved", b)
}

// DeclineCancellation handles POST /bookings/:id/decline-cancel (staff).
func (h *BookingHandler) DeclineCancellation(c *gin.Context) {
	var in struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&in)

	b, err := h.Bookings.DeclineCancellation(c.Request.Context(), c.Param("id"), in.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Cancellation declined", b)
}
