package notification

import (
	"fmt"

	"bookstay/models"

	"github.com/olahol/melody"
	"gorm.io/gorm"
)

// Tên sự kiện chuyển trạng thái booking
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// EventBuilder dựng message cho một sự kiện booking
type EventBuilder struct {
	event     string
	bookingID uint
	actorID   uint
}

func NewEventBuilder(event string, bookingID, actorID uint) *EventBuilder {
	return &EventBuilder{
		event:     event,
		bookingID: bookingID,
		actorID:   actorID,
	}
}

func (b *EventBuilder) Build() string {
	return fmt.Sprintf("🔔 %s|booking:%d|actor:%d", b.event, b.bookingID, b.actorID)
}

// Dispatcher ghi lại sự kiện và phát qua websocket, việc gửi thật (email/push)
// do collaborator bên ngoài đảm nhận
type Dispatcher struct {
	db      *gorm.DB
	service Service
}

func NewDispatcher(db *gorm.DB, service Service) *Dispatcher {
	return &Dispatcher{db: db, service: service}
}

// Dispatch lưu sự kiện vào DB rồi broadcast. Lỗi broadcast không làm hỏng nghiệp vụ.
func (d *Dispatcher) Dispatch(event string, booking *models.Booking, actorID uint, actorRole int) error {
	var userID uint
	if booking.UserID != nil {
		userID = *booking.UserID
	}

	record := models.Notification{
		UserID:    userID,
		BookingID: booking.ID,
		Event:     event,
		ActorID:   actorID,
		ActorRole: actorRole,
		Message:   NewEventBuilder(event, booking.ID, actorID).Build(),
	}
	if err := d.db.Create(&record).Error; err != nil {
		return err
	}

	if d.service != nil {
		_ = d.service.SendMessage(record.Message)
	}
	return nil
}
