package services

import (
	"time"

	"bookstay/constants"
	"bookstay/dto"
	"bookstay/errors"
	"bookstay/models"
	"bookstay/services/logger"
	"bookstay/services/notification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService điều khiển vòng đời booking: tạo, xác nhận, hủy, hoàn thành.
// Mọi thao tác ghi chạy trong transaction và kiểm tra lại sức chứa bên trong
// transaction, không tin vào kết quả đọc trước đó.
type BookingService struct {
	db         *gorm.DB
	payments   *PaymentService
	dispatcher *notification.Dispatcher
	logger     logger.Logger
}

func NewBookingService(db *gorm.DB, dispatcher *notification.Dispatcher) *BookingService {
	return &BookingService{
		db:         db,
		payments:   NewPaymentService(db),
		dispatcher: dispatcher,
		logger:     logger.NewDefaultLogger(logger.InfoLevel),
	}
}

// lockForUpdate khóa dòng trong Postgres, sqlite không hỗ trợ FOR UPDATE
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateBooking tạo booking mới ở trạng thái pending sau khi kiểm tra sức chứa
func (s *BookingService) CreateBooking(req *dto.CreateBookingParams) (*models.Booking, error) {
	if err := ValidateDateRange(req.CheckInDate, req.CheckOutDate); err != nil {
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	if req.CheckInDate.Before(today) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidArgument, "Ngày nhận phòng không được nhỏ hơn ngày hiện tại", nil)
	}

	var booking *models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var roomType models.RoomType
		if err := lockForUpdate(tx).Preload("Hotel").Where("id = ? AND active = ?", req.RoomTypeID, true).First(&roomType).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy loại phòng", errors.ErrRoomTypeNotFound)
			}
			return errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được loại phòng", err)
		}

		if req.HotelID != 0 && roomType.HotelID != req.HotelID {
			return errors.NewAppError(errors.ErrCodeInvalidArgument, "Loại phòng không thuộc khách sạn này", nil)
		}

		if req.Guests <= 0 || (roomType.MaxGuests > 0 && req.Guests > roomType.MaxGuests) {
			return errors.NewAppError(errors.ErrCodeInvalidArgument, "Số khách không hợp lệ cho loại phòng này", nil)
		}

		// Kiểm tra lại sức chứa bên trong transaction
		booked, err := CountBookedUnits(tx, roomType.ID, req.CheckInDate, req.CheckOutDate)
		if err != nil {
			return err
		}
		if booked >= roomType.TotalUnits {
			return errors.NewAppError(errors.ErrCodeRoomUnavailable, "Loại phòng đã hết trong khoảng thời gian này", errors.ErrRoomUnavailable)
		}

		nights := int(req.CheckOutDate.Sub(req.CheckInDate).Hours() / 24)
		totalPrice := roomType.NightlyPrice() * float64(nights)

		booking = &models.Booking{
			UserID:        req.UserID,
			HotelID:       roomType.HotelID,
			RoomTypeID:    roomType.ID,
			CheckInDate:   req.CheckInDate,
			CheckOutDate:  req.CheckOutDate,
			Guests:        req.Guests,
			Status:        models.BookingStatusPending,
			PaymentMethod: req.PaymentMethod,
			TotalPrice:    totalPrice,
			GuestName:     req.GuestName,
			GuestEmail:    req.GuestEmail,
			GuestPhone:    req.GuestPhone,
		}
		if err := tx.Create(booking).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không tạo được booking", err)
		}

		booking.Hotel = roomType.Hotel
		booking.RoomType = roomType
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(notification.EventBookingCreated, booking, req.ActorID, constants.RoleCustomer)
	return booking, nil
}

// ConfirmBooking chủ khách sạn xác nhận booking đang pending
func (s *BookingService) ConfirmBooking(bookingID, actorID uint, actorRole int, paid bool, method int) (*models.Booking, error) {
	var booking *models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		b, err := s.getForUpdate(tx, bookingID)
		if err != nil {
			return err
		}

		if err := s.requireManager(tx, b, actorID, actorRole); err != nil {
			return err
		}

		state := models.GetBookingState(b.Status)
		if err := state.Confirm(b); err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidState, "Không thể xác nhận booking ở trạng thái hiện tại", err)
		}

		if paid {
			b.IsPaid = true
			b.PaymentMethod = method
			if _, err := s.payments.RecordPayment(tx, b, method); err != nil {
				return err
			}
		}

		if err := tx.Save(b).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được booking", err)
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(notification.EventBookingConfirmed, booking, actorID, actorRole)
	return booking, nil
}

// CancelBooking hủy booking, tính hoàn tiền theo vai trò người hủy
func (s *BookingService) CancelBooking(bookingID, actorID uint, actorRole int, reason string) (*models.Booking, *RefundResult, error) {
	var booking *models.Booking
	var refund RefundResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		b, err := s.getForUpdate(tx, bookingID)
		if err != nil {
			return err
		}

		if actorRole == constants.RoleCustomer {
			if b.UserID == nil || *b.UserID != actorID {
				return errors.NewAppError(errors.ErrCodeForbidden, "Không có quyền hủy booking này", nil)
			}
		} else if err := s.requireManager(tx, b, actorID, actorRole); err != nil {
			return err
		}

		state := models.GetBookingState(b.Status)
		if err := state.Cancel(b); err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidState, "Không thể hủy booking ở trạng thái hiện tại", err)
		}

		// Server là nguồn chân lý duy nhất về số tiền hoàn
		refund, err = ComputeRefund(b, actorRole, reason, time.Now())
		if err != nil {
			return err
		}

		now := time.Now()
		cancelledBy := constants.CancelledByCustomer
		if actorRole != constants.RoleCustomer {
			cancelledBy = constants.CancelledByOwner
		}
		b.CancellationReason = reason
		b.RefundPercentage = refund.Percentage
		b.RefundAmount = refund.Amount
		b.CancelledBy = &cancelledBy
		b.CancelledAt = &now

		if err := tx.Save(b).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được booking", err)
		}

		if err := s.payments.RecordRefund(tx, b, refund.Amount); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.dispatch(notification.EventBookingCancelled, booking, actorID, actorRole)
	return booking, &refund, nil
}

// CompleteBooking đánh dấu booking đã hoàn thành sau kỳ lưu trú
func (s *BookingService) CompleteBooking(bookingID, actorID uint, actorRole int) (*models.Booking, error) {
	var booking *models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		b, err := s.getForUpdate(tx, bookingID)
		if err != nil {
			return err
		}

		if err := s.requireManager(tx, b, actorID, actorRole); err != nil {
			return err
		}

		state := models.GetBookingState(b.Status)
		if err := state.Complete(b); err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidState, "Không thể hoàn thành booking ở trạng thái hiện tại", err)
		}

		if err := tx.Save(b).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được booking", err)
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(notification.EventBookingCompleted, booking, actorID, actorRole)
	return booking, nil
}

// AutoCompleteDueBookings hoàn thành các booking đã qua ngày trả phòng, chạy bởi cron
func (s *BookingService) AutoCompleteDueBookings(now time.Time) (int, error) {
	var due []models.Booking
	if err := s.db.Where("status = ? AND check_out_date <= ?", models.BookingStatusConfirmed, now).Find(&due).Error; err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được booking đến hạn", err)
	}

	completed := 0
	for i := range due {
		b := &due[i]
		ownerID := uint(0)
		err := s.db.Transaction(func(tx *gorm.DB) error {
			locked, err := s.getForUpdate(tx, b.ID)
			if err != nil {
				return err
			}
			state := models.GetBookingState(locked.Status)
			if err := state.Complete(locked); err != nil {
				return err
			}
			*b = *locked
			ownerID = locked.Hotel.UserID
			return tx.Save(locked).Error
		})
		if err != nil {
			continue
		}
		s.dispatch(notification.EventBookingCompleted, b, ownerID, constants.RoleOwner)
		completed++
	}
	if completed > 0 {
		s.logger.Info("Đã tự hoàn thành %d booking qua ngày trả phòng", completed)
	}
	return completed, nil
}

// HasActiveBookings loại phòng còn booking pending/confirmed không, dùng để chặn xóa
func (s *BookingService) HasActiveBookings(roomTypeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Booking{}).
		Where("room_type_id = ? AND status IN ?", roomTypeID, []int{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Count(&count).Error
	if err != nil {
		return false, errors.NewAppError(errors.ErrCodeDBError, "Không đếm được booking", err)
	}
	return count > 0, nil
}

// GetByID lấy booking kèm thông tin liên quan
func (s *BookingService) GetByID(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("User").Preload("Hotel").Preload("RoomType").First(&booking, bookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy booking", errors.ErrBookingNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được booking", err)
	}
	return &booking, nil
}

func (s *BookingService) getForUpdate(tx *gorm.DB, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := lockForUpdate(tx).Preload("Hotel").Preload("RoomType").First(&booking, bookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy booking", errors.ErrBookingNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được booking", err)
	}
	return &booking, nil
}

// requireManager actor phải là super admin, chủ khách sạn hoặc lễ tân của chủ đó
func (s *BookingService) requireManager(tx *gorm.DB, booking *models.Booking, actorID uint, actorRole int) error {
	switch actorRole {
	case constants.RoleSuperAdmin:
		return nil
	case constants.RoleOwner:
		if booking.Hotel.UserID == actorID {
			return nil
		}
	case constants.RoleReceptionist:
		var receptionist models.User
		if err := tx.First(&receptionist, actorID).Error; err == nil &&
			receptionist.OwnerId != nil && *receptionist.OwnerId == booking.Hotel.UserID {
			return nil
		}
	}
	return errors.NewAppError(errors.ErrCodeForbidden, "Không có quyền thao tác trên booking này", nil)
}

func (s *BookingService) dispatch(event string, booking *models.Booking, actorID uint, actorRole int) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Dispatch(event, booking, actorID, actorRole); err != nil {
		// Lỗi thông báo không làm hỏng nghiệp vụ
		s.logger.Error("Lỗi gửi thông báo %s cho booking %d: %v", event, booking.ID, err)
	}
}
