package builders

import (
	"time"

	"bookstay/models"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder tạo instance mới của BookingBuilder
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{},
	}
}

// WithUser thêm thông tin user
func (b *BookingBuilder) WithUser(userID uint) *BookingBuilder {
	b.booking.UserID = &userID
	return b
}

// WithRoomType thêm loại phòng
func (b *BookingBuilder) WithRoomType(hotelID, roomTypeID uint) *BookingBuilder {
	b.booking.HotelID = hotelID
	b.booking.RoomTypeID = roomTypeID
	return b
}

// WithStatus thêm trạng thái
func (b *BookingBuilder) WithStatus(status int) *BookingBuilder {
	b.booking.Status = status
	return b
}

// WithGuestInfo thêm thông tin khách
func (b *BookingBuilder) WithGuestInfo(guestName, guestPhone, guestEmail string) *BookingBuilder {
	b.booking.GuestName = guestName
	b.booking.GuestPhone = guestPhone
	b.booking.GuestEmail = guestEmail
	return b
}

// WithDates thêm khoảng ngày lưu trú
func (b *BookingBuilder) WithDates(checkIn, checkOut time.Time) *BookingBuilder {
	b.booking.CheckInDate = checkIn
	b.booking.CheckOutDate = checkOut
	return b
}

// WithGuests thêm số khách
func (b *BookingBuilder) WithGuests(guests int) *BookingBuilder {
	b.booking.Guests = guests
	return b
}

// WithPayment thêm thông tin thanh toán
func (b *BookingBuilder) WithPayment(isPaid bool, method int) *BookingBuilder {
	b.booking.IsPaid = isPaid
	b.booking.PaymentMethod = method
	return b
}

// WithTotalPrice thêm tổng giá
func (b *BookingBuilder) WithTotalPrice(totalPrice float64) *BookingBuilder {
	b.booking.TotalPrice = totalPrice
	return b
}

// Build tạo booking hoàn chỉnh
func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}
