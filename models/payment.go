package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Payment struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	PaymentCode    string     `json:"paymentCode" gorm:"unique;size:20"` // Mã thanh toán duy nhất
	BookingID      uint       `json:"bookingId" gorm:"index"`
	Booking        Booking    `json:"booking" gorm:"foreignKey:BookingID"`
	Amount         float64    `json:"amount"`
	Method         int        `json:"method"` // 0: tiền mặt, 1: ck ngân hàng, 2: momo, 3: stripe
	Status         int        `json:"status"` // 1: Đã thanh toán, 2: Đã hoàn tiền
	RefundedAmount float64    `json:"refundedAmount"`
	RefundedAt     *time.Time `json:"refundedAt,omitempty"`
	OwnerID        uint       `json:"ownerId"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (payment *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	payment.PaymentCode = fmt.Sprintf("BST%d", time.Now().UnixNano()%1e12)

	var count int64
	if err := tx.Model(&Payment{}).Where("payment_code = ?", payment.PaymentCode).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("PaymentCode đã tồn tại, hãy thử lại")
	}
	return nil
}
