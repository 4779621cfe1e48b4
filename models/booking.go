package models

import (
	"time"
)

// Booking status constants
const (
	BookingStatusPending   = 0
	BookingStatusConfirmed = 1
	BookingStatusCompleted = 2
	BookingStatusCancelled = 3
)

type Booking struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	UserID             *uint      `json:"userId"`
	User               *User      `json:"user" gorm:"foreignKey:UserID"`
	HotelID            uint       `json:"hotelId" gorm:"index"`
	Hotel              Hotel      `json:"hotel" gorm:"foreignKey:HotelID"`
	RoomTypeID         uint       `json:"roomTypeId" gorm:"index"`
	RoomType           RoomType   `json:"roomType" gorm:"foreignKey:RoomTypeID"`
	CheckInDate        time.Time  `json:"checkInDate" gorm:"index"`
	CheckOutDate       time.Time  `json:"checkOutDate" gorm:"index"`
	Guests             int        `json:"guests"`
	Status             int        `json:"status" gorm:"index"`
	IsPaid             bool       `json:"isPaid" gorm:"default:false"`
	PaymentMethod      int        `json:"paymentMethod"`
	TotalPrice         float64    `json:"totalPrice"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	RefundPercentage   int        `json:"refundPercentage"`
	RefundAmount       float64    `json:"refundAmount"`
	CancelledBy        *int       `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	GuestName          string     `json:"guestName,omitempty"`
	GuestEmail         string     `json:"guestEmail,omitempty"`
	GuestPhone         string     `json:"guestPhone,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Nights số đêm lưu trú
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

// IsActive booking còn giữ phòng hay không (pending hoặc confirmed)
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
