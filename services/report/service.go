package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bookingRepo "grandstay/database/repository/booking"
	roomRepo "grandstay/database/repository/room"
	"grandstay/models"
	"grandstay/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const revenueCacheTTL = 5 * time.Minute

// ReportService derives read-only summaries from the booking history. It has
// no write access to booking state.
type ReportService struct {
	Bookings bookingRepo.BookingRepository
	Rooms    roomRepo.RoomRepository
	Cache    *redis.Client // optional; nil disables report caching
}

// Occupancy computes the occupancy rate over [from, to):
// booked room-nights divided by (room count × days in window).
func (s *ReportService) Occupancy(ctx context.Context, from, to time.Time) (*models.OccupancyReport, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("report window end must be after start")
	}

	roomCount, err := s.Rooms.Count()
	if err != nil {
		return nil, err
	}
	days := int(to.Sub(from).Hours() / 24)

	statuses := []models.BookingStatus{models.BookingConfirmed, models.BookingCheckedIn, models.BookingCheckedOut}
	bookings, err := s.Bookings.FindIntersecting(from, to, statuses)
	if err != nil {
		return nil, err
	}

	bookedNights := 0
	for _, b := range bookings {
		bookedNights += clippedNights(b.CheckIn, b.CheckOut, from, to)
	}

	report := &models.OccupancyReport{
		From:            from.Format("2006-01-02"),
		To:              to.Format("2006-01-02"),
		RoomCount:       roomCount,
		Days:            days,
		BookedRoomNight: bookedNights,
	}
	if roomCount > 0 && days > 0 {
		report.OccupancyRate = float64(bookedNights) / float64(roomCount*days)
	}
	return report, nil
}

// clippedNights returns the whole nights of [checkIn, checkOut) that fall
// inside the report window [from, to).
func clippedNights(checkIn, checkOut, from, to time.Time) int {
	start := checkIn
	if from.After(start) {
		start = from
	}
	end := checkOut
	if to.Before(end) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

// Revenue aggregates paid revenue over bookings created in [from, to),
// broken down by status, room type and day. Results are cached briefly.
func (s *ReportService) Revenue(ctx context.Context, from, to time.Time) (*models.RevenueReport, error) {
	cacheKey := fmt.Sprintf("report:revenue:%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	total, err := s.Bookings.TotalRevenue(from, to)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.Bookings.CountByStatus(from, to)
	if err != nil {
		return nil, err
	}
	byRoomType, err := s.Bookings.RevenueByRoomType(from, to)
	if err != nil {
		return nil, err
	}
	byDay, err := s.Bookings.RevenueByDay(from, to)
	if err != nil {
		return nil, err
	}

	report := &models.RevenueReport{
		From:       from.Format("2006-01-02"),
		To:         to.Format("2006-01-02"),
		Total:      total,
		ByStatus:   byStatus,
		ByRoomType: byRoomType,
		ByDay:      byDay,
	}
	s.toCache(ctx, cacheKey, report)
	return report, nil
}

// TopCustomers ranks guests by paid spend in the window.
func (s *ReportService) TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]models.TopCustomer, error) {
	return s.Bookings.TopCustomers(from, to, limit)
}

func (s *ReportService) fromCache(ctx context.Context, key string) *models.RevenueReport {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var report models.RevenueReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil
	}
	return &report
}

func (s *ReportService) toCache(ctx context.Context, key string, report *models.RevenueReport) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, revenueCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache revenue report", zap.Error(err))
	}
}
