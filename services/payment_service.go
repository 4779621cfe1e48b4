package services

import (
	"time"

	"bookstay/constants"
	"bookstay/errors"
	"bookstay/models"

	"gorm.io/gorm"
)

// PaymentService ghi nhận thanh toán và hoàn tiền cho booking.
// Việc chuyển tiền thực tế (Stripe/MoMo) do cổng thanh toán bên ngoài xử lý,
// service này chỉ giữ bản ghi.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// RecordPayment tạo bản ghi thanh toán cho booking khi xác nhận
func (s *PaymentService) RecordPayment(tx *gorm.DB, booking *models.Booking, method int) (*models.Payment, error) {
	var existing models.Payment
	if err := tx.Where("booking_id = ?", booking.ID).First(&existing).Error; err == nil {
		return nil, errors.NewAppError(errors.ErrCodeDBDuplicate, "Booking đã có bản ghi thanh toán", nil)
	}

	payment := models.Payment{
		BookingID: booking.ID,
		Amount:    booking.TotalPrice,
		Method:    method,
		Status:    constants.PaymentStatusPaid,
		OwnerID:   booking.Hotel.UserID,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không tạo được bản ghi thanh toán", err)
	}
	return &payment, nil
}

// RecordRefund đánh dấu bản ghi thanh toán đã hoàn tiền với số tiền tương ứng.
// Booking chưa thanh toán thì không có gì để hoàn.
func (s *PaymentService) RecordRefund(tx *gorm.DB, booking *models.Booking, amount float64) error {
	if !booking.IsPaid || amount <= 0 {
		return nil
	}

	var payment models.Payment
	if err := tx.Where("booking_id = ?", booking.ID).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return errors.NewAppError(errors.ErrCodeDBError, "Không truy vấn được bản ghi thanh toán", err)
	}

	now := time.Now()
	payment.Status = constants.PaymentStatusRefunded
	payment.RefundedAmount = amount
	payment.RefundedAt = &now
	if err := tx.Save(&payment).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được bản ghi hoàn tiền", err)
	}
	return nil
}
