package cron

import (
	"context"
	"time"

	bookingRepo "grandstay/database/repository/booking"
	"grandstay/models"
	bookingSvc "grandstay/services/booking"
	roomSvc "grandstay/services/room"
	"grandstay/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper runs the nightly housekeeping jobs over the booking calendar.
type Sweeper struct {
	Bookings bookingRepo.BookingRepository
	Booking  bookingSvc.BookingService
	Rooms    roomSvc.RoomService
}

// Start schedules the nightly sweep at 02:00 server time and returns the
// running scheduler.
func (s *Sweeper) Start() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("0 2 * * *", s.Run); err != nil {
		utils.GetLogger().Error("failed to schedule nightly sweep", zap.Error(err))
		return c
	}
	c.Start()
	return c
}

// Run executes one sweep pass: check out overstayed guests and cancel stale
// pending bookings. Safe to call on demand.
func (s *Sweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s.checkOutOverstays(ctx)
	s.cancelStalePending(ctx)
}

// checkOutOverstays moves checked-in bookings past their check-out date to
// checked-out and flags their rooms dirty for housekeeping.
func (s *Sweeper) checkOutOverstays(ctx context.Context) {
	logger := utils.GetLogger()

	overstays, err := s.Bookings.FindCheckedInEndingBy(time.Now())
	if err != nil {
		logger.Error("sweep: overstay query failed", zap.Error(err))
		return
	}

	for _, b := range overstays {
		if _, err := s.Booking.UpdateStatus(ctx, b.ID, models.BookingCheckedOut); err != nil {
			logger.Warn("sweep: auto check-out failed",
				zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		if _, err := s.Rooms.SetHousekeeping(ctx, b.RoomID, models.HousekeepingDirty); err != nil {
			logger.Warn("sweep: failed to flag room dirty",
				zap.String("roomID", b.RoomID), zap.Error(err))
		}
		logger.Info("sweep: booking auto checked-out", zap.String("bookingID", b.ID))
	}
}

// cancelStalePending cancels pending bookings whose check-in date has passed
// without confirmation, releasing the dates for other guests.
func (s *Sweeper) cancelStalePending(ctx context.Context) {
	logger := utils.GetLogger()

	stale, err := s.Bookings.FindStalePending(time.Now())
	if err != nil {
		logger.Error("sweep: stale pending query failed", zap.Error(err))
		return
	}

	for _, b := range stale {
		if _, err := s.Booking.UpdateStatus(ctx, b.ID, models.BookingCancelled); err != nil {
			logger.Warn("sweep: stale pending cancellation failed",
				zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		logger.Info("sweep: stale pending booking cancelled", zap.String("bookingID", b.ID))
	}
}
