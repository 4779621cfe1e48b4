package models

import "time"

// Notification lưu sự kiện chuyển trạng thái booking, việc gửi đi do bên ngoài xử lý
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId"`
	BookingID uint      `json:"bookingId" gorm:"index"`
	Event     string    `gorm:"type:varchar(50);not null" json:"event"` // booking.created, booking.confirmed...
	ActorID   uint      `json:"actorId"`
	ActorRole int       `json:"actorRole"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	User      *User     `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:UserID;references:ID"`
}
