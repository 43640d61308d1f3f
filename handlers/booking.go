package handlers

import (
	"net/http"
	"time"

	"restaurant-api/config"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

type CreateBookingRequest struct {
	Name            string `json:"name" binding:"required"`
	GuestNumber     int    `json:"guest_number" binding:"required,min=1"`
	ReservationDate string `json:"reservation_date" binding:"required"`
	ReservationSlot int    `json:"reservation_slot" binding:"required"`
	Comment         string `json:"comment"`
}

// ListBookings returns all reservations (public)
func ListBookings(c *gin.Context) {
	var bookings []models.Booking
	config.DB.Order("reservation_date asc, reservation_slot asc").Find(&bookings)
	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "bookings": bookings})
}

// CreateBooking records a table reservation (public)
func CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", req.ReservationDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid reservation_date, expected YYYY-MM-DD"})
		return
	}

	booking := models.Booking{
		Name:            req.Name,
		GuestNumber:     req.GuestNumber,
		ReservationDate: date,
		ReservationSlot: req.ReservationSlot,
		Comment:         req.Comment,
	}
	if err := config.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create booking"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}
