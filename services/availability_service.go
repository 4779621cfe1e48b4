package services

import (
	"time"

	"bookstay/dto"
	"bookstay/errors"
	"bookstay/models"

	"gorm.io/gorm"
)

// AvailabilityService trả lời câu hỏi còn bao nhiêu phòng trống cho một khoảng ngày
type AvailabilityService struct {
	db *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

// IntervalsOverlap hai khoảng nửa mở [a1,a2) và [b1,b2) có giao nhau không
func IntervalsOverlap(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// ValidateDateRange ngày trả phòng phải sau ngày nhận phòng
func ValidateDateRange(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return errors.NewAppError(errors.ErrCodeInvalidArgument, "Ngày trả phòng phải sau ngày nhận phòng", errors.ErrInvalidDateRange)
	}
	return nil
}

// overlappingBookings query đếm booking pending/confirmed giao với khoảng ngày.
// Dùng chung cho cả GetAvailability và kiểm tra sức chứa khi tạo booking.
func overlappingBookings(tx *gorm.DB, roomTypeID uint, checkIn, checkOut time.Time) *gorm.DB {
	return tx.Model(&models.Booking{}).
		Where("room_type_id = ?", roomTypeID).
		Where("status IN ?", []int{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
}

// CountBookedUnits số đơn vị phòng đã bị giữ trong khoảng ngày
func CountBookedUnits(tx *gorm.DB, roomTypeID uint, checkIn, checkOut time.Time) (int, error) {
	var count int64
	if err := overlappingBookings(tx, roomTypeID, checkIn, checkOut).Count(&count).Error; err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Không đếm được số phòng đã đặt", err)
	}
	return int(count), nil
}

// GetAvailability tính số phòng trống của một loại phòng trong khoảng ngày
func (s *AvailabilityService) GetAvailability(hotelID, roomTypeID uint, checkIn, checkOut time.Time) (*dto.AvailabilityInfo, error) {
	if err := ValidateDateRange(checkIn, checkOut); err != nil {
		return nil, err
	}

	var roomType models.RoomType
	if err := s.db.Where("id = ? AND hotel_id = ?", roomTypeID, hotelID).First(&roomType).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy loại phòng", errors.ErrRoomTypeNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được loại phòng", err)
	}

	booked, err := CountBookedUnits(s.db, roomTypeID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	available := roomType.TotalUnits - booked
	if available < 0 {
		available = 0
	}

	return &dto.AvailabilityInfo{
		RoomTypeID:     roomType.ID,
		TotalUnits:     roomType.TotalUnits,
		BookedUnits:    booked,
		AvailableUnits: available,
		IsFullyBooked:  available == 0,
	}, nil
}

// AnnotateRoomTypes gắn thông tin phòng trống cho danh sách loại phòng,
// phục vụ badge "chỉ còn N phòng" / "hết phòng" ở trang danh sách
func (s *AvailabilityService) AnnotateRoomTypes(roomTypes []models.RoomType, checkIn, checkOut time.Time) ([]dto.RoomTypeAvailability, error) {
	if err := ValidateDateRange(checkIn, checkOut); err != nil {
		return nil, err
	}

	annotated := make([]dto.RoomTypeAvailability, 0, len(roomTypes))
	for _, rt := range roomTypes {
		booked, err := CountBookedUnits(s.db, rt.ID, checkIn, checkOut)
		if err != nil {
			return nil, err
		}
		available := rt.TotalUnits - booked
		if available < 0 {
			available = 0
		}
		annotated = append(annotated, dto.RoomTypeAvailability{
			RoomType: rt,
			Availability: dto.AvailabilityInfo{
				RoomTypeID:     rt.ID,
				TotalUnits:     rt.TotalUnits,
				BookedUnits:    booked,
				AvailableUnits: available,
				IsFullyBooked:  available == 0,
			},
		})
	}
	return annotated, nil
}
