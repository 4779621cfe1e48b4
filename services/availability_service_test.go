package services

import (
	"testing"
	"time"

	"bookstay/errors"
	"bookstay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a1, a2   time.Time
		b1, b2   time.Time
		expected bool
	}{
		{"giao nhau một phần", date(2026, 10, 1), date(2026, 10, 5), date(2026, 10, 3), date(2026, 10, 7), true},
		{"chứa trọn", date(2026, 10, 1), date(2026, 10, 10), date(2026, 10, 3), date(2026, 10, 5), true},
		{"trùng hoàn toàn", date(2026, 10, 1), date(2026, 10, 5), date(2026, 10, 1), date(2026, 10, 5), true},
		{"check-out chạm check-in không tính", date(2026, 10, 1), date(2026, 10, 5), date(2026, 10, 5), date(2026, 10, 8), false},
		{"check-in chạm check-out không tính", date(2026, 10, 5), date(2026, 10, 8), date(2026, 10, 1), date(2026, 10, 5), false},
		{"tách rời", date(2026, 10, 1), date(2026, 10, 3), date(2026, 10, 10), date(2026, 10, 12), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IntervalsOverlap(tt.a1, tt.a2, tt.b1, tt.b2))
			// Giao nhau có tính đối xứng
			assert.Equal(t, tt.expected, IntervalsOverlap(tt.b1, tt.b2, tt.a1, tt.a2))
		})
	}
}

func TestValidateDateRange(t *testing.T) {
	assert.NoError(t, ValidateDateRange(date(2026, 10, 1), date(2026, 10, 2)))

	err := ValidateDateRange(date(2026, 10, 2), date(2026, 10, 1))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))

	err = ValidateDateRange(date(2026, 10, 1), date(2026, 10, 1))
	require.Error(t, err)
}

func TestGetAvailability(t *testing.T) {
	f := newTestFixture(t)
	svc := NewAvailabilityService(f.db)

	checkIn := date(2026, 12, 1)
	checkOut := date(2026, 12, 5)

	t.Run("chưa có booking thì trống toàn bộ", func(t *testing.T) {
		info, err := svc.GetAvailability(f.hotel.ID, f.roomType.ID, checkIn, checkOut)
		require.NoError(t, err)
		assert.Equal(t, 2, info.TotalUnits)
		assert.Equal(t, 0, info.BookedUnits)
		assert.Equal(t, 2, info.AvailableUnits)
		assert.False(t, info.IsFullyBooked)
	})

	t.Run("booking pending và confirmed đều giữ phòng", func(t *testing.T) {
		pending := models.Booking{
			UserID: &f.customer.ID, HotelID: f.hotel.ID, RoomTypeID: f.roomType.ID,
			CheckInDate: checkIn, CheckOutDate: checkOut,
			Status: models.BookingStatusPending,
		}
		require.NoError(t, f.db.Create(&pending).Error)

		confirmed := models.Booking{
			UserID: &f.customer.ID, HotelID: f.hotel.ID, RoomTypeID: f.roomType.ID,
			CheckInDate: date(2026, 12, 3), CheckOutDate: date(2026, 12, 8),
			Status: models.BookingStatusConfirmed,
		}
		require.NoError(t, f.db.Create(&confirmed).Error)

		info, err := svc.GetAvailability(f.hotel.ID, f.roomType.ID, checkIn, checkOut)
		require.NoError(t, err)
		assert.Equal(t, 2, info.BookedUnits)
		assert.Equal(t, 0, info.AvailableUnits)
		assert.True(t, info.IsFullyBooked)
	})

	t.Run("booking hủy và hoàn thành không giữ phòng", func(t *testing.T) {
		cancelled := models.Booking{
			UserID: &f.customer.ID, HotelID: f.hotel.ID, RoomTypeID: f.roomType.ID,
			CheckInDate: checkIn, CheckOutDate: checkOut,
			Status: models.BookingStatusCancelled,
		}
		require.NoError(t, f.db.Create(&cancelled).Error)

		info, err := svc.GetAvailability(f.hotel.ID, f.roomType.ID, date(2026, 12, 20), date(2026, 12, 22))
		require.NoError(t, err)
		assert.Equal(t, 0, info.BookedUnits)
	})

	t.Run("khoảng kề nhau không tính là giao", func(t *testing.T) {
		info, err := svc.GetAvailability(f.hotel.ID, f.roomType.ID, date(2026, 12, 8), date(2026, 12, 10))
		require.NoError(t, err)
		assert.Equal(t, 0, info.BookedUnits)
	})

	t.Run("loại phòng không tồn tại", func(t *testing.T) {
		_, err := svc.GetAvailability(f.hotel.ID, 9999, checkIn, checkOut)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	})

	t.Run("khoảng ngày ngược bị từ chối", func(t *testing.T) {
		_, err := svc.GetAvailability(f.hotel.ID, f.roomType.ID, checkOut, checkIn)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))
	})
}

func TestAnnotateRoomTypes(t *testing.T) {
	f := newTestFixture(t)
	svc := NewAvailabilityService(f.db)

	second := models.RoomType{
		HotelID: f.hotel.ID, Label: "Suite", Price: 3000000,
		TotalUnits: 1, MaxGuests: 4, Active: true,
	}
	require.NoError(t, f.db.Create(&second).Error)

	booking := models.Booking{
		UserID: &f.customer.ID, HotelID: f.hotel.ID, RoomTypeID: second.ID,
		CheckInDate: date(2026, 12, 1), CheckOutDate: date(2026, 12, 5),
		Status: models.BookingStatusConfirmed,
	}
	require.NoError(t, f.db.Create(&booking).Error)

	annotated, err := svc.AnnotateRoomTypes([]models.RoomType{f.roomType, second}, date(2026, 12, 2), date(2026, 12, 4))
	require.NoError(t, err)
	require.Len(t, annotated, 2)

	assert.Equal(t, 2, annotated[0].Availability.AvailableUnits)
	assert.False(t, annotated[0].Availability.IsFullyBooked)

	assert.Equal(t, 0, annotated[1].Availability.AvailableUnits)
	assert.True(t, annotated[1].Availability.IsFullyBooked)
}
