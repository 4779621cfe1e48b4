package dto

import (
	"time"
)

// CreateBookingRequest là DTO cho request tạo booking, ngày dạng dd/mm/yyyy
type CreateBookingRequest struct {
	UserID        uint   `json:"userId"`
	HotelID       uint   `json:"hotelId"`
	RoomTypeID    uint   `json:"roomTypeId" binding:"required"`
	CheckInDate   string `json:"checkInDate" binding:"required"`
	CheckOutDate  string `json:"checkOutDate" binding:"required"`
	Guests        int    `json:"guests" binding:"required"`
	PaymentMethod int    `json:"paymentMethod"`
	GuestName     string `json:"guestName,omitempty"`
	GuestEmail    string `json:"guestEmail,omitempty"`
	GuestPhone    string `json:"guestPhone,omitempty"`
}

// CreateBookingParams tham số đã parse cho BookingService
type CreateBookingParams struct {
	UserID        *uint
	ActorID       uint
	HotelID       uint
	RoomTypeID    uint
	CheckInDate   time.Time
	CheckOutDate  time.Time
	Guests        int
	PaymentMethod int
	GuestName     string
	GuestEmail    string
	GuestPhone    string
}

// ConfirmBookingRequest là DTO cho request xác nhận booking
type ConfirmBookingRequest struct {
	ID            uint `json:"id" binding:"required"`
	Paid          bool `json:"paid"`
	PaymentMethod int  `json:"paymentMethod"`
}

// CancelBookingRequest là DTO cho request hủy booking
type CancelBookingRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Reason string `json:"reason"`
}

// CompleteBookingRequest là DTO cho request hoàn thành booking
type CompleteBookingRequest struct {
	ID uint `json:"id" binding:"required"`
}

// ActorResponse là DTO cho thông tin user/actor
type ActorResponse struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type BookingHotelResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Ward     string `json:"ward"`
	District string `json:"district"`
	Province string `json:"province"`
	Avatar   string `json:"avatar"`
}

type BookingRoomTypeResponse struct {
	ID       uint    `json:"id"`
	HotelID  uint    `json:"hotelId"`
	Label    string  `json:"label"`
	Price    float64 `json:"price"`
	Discount int     `json:"discount"`
}

type BookingResponse struct {
	ID                 uint                    `json:"id"`
	User               ActorResponse           `json:"user"`
	Hotel              BookingHotelResponse    `json:"hotel"`
	RoomType           BookingRoomTypeResponse `json:"roomType"`
	CheckInDate        string                  `json:"checkInDate"`
	CheckOutDate       string                  `json:"checkOutDate"`
	Guests             int                     `json:"guests"`
	Status             int                     `json:"status"`
	IsPaid             bool                    `json:"isPaid"`
	PaymentMethod      int                     `json:"paymentMethod"`
	TotalPrice         float64                 `json:"totalPrice"`
	CancellationReason string                  `json:"cancellationReason,omitempty"`
	RefundPercentage   int                     `json:"refundPercentage"`
	RefundAmount       float64                 `json:"refundAmount"`
	PaymentCode        string                  `json:"paymentCode,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

// CancelBookingResponse kết quả hủy kèm thông tin hoàn tiền
type CancelBookingResponse struct {
	Booking          BookingResponse `json:"booking"`
	RefundPercentage int             `json:"refundPercentage"`
	RefundAmount     float64         `json:"refundAmount"`
}

// RefundPreviewResponse bảng bậc hoàn tiền cho client hiển thị trước khi hủy.
// Kết quả server tại thời điểm hủy luôn là kết quả cuối cùng.
type RefundPreviewResponse struct {
	HoursUntilCheckIn float64 `json:"hoursUntilCheckIn"`
	RefundPercentage  int     `json:"refundPercentage"`
	RefundAmount      float64 `json:"refundAmount"`
}
