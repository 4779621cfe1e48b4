package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	Name          string        `gorm:"default:New User" json:"name"`
	Email         string        `gorm:"unique" json:"email"`
	Password      string        `json:"password"`
	IsVerified    bool          `gorm:"default:false" json:"is_verified"`
	PhoneNumber   string        `gorm:"unique;type:varchar(11)" json:"phoneNumber"`
	Avatar        string        `json:"avatar"`
	Role          int           `gorm:"default:0" json:"role"`
	Status        int           `gorm:"default:1" json:"status"`
	Children      []User        `gorm:"foreignKey:OwnerId" json:"children,omitempty"`
	OwnerId       *uint         `json:"ownerId,omitempty"`
	HotelIDs      pq.Int64Array `json:"hotel_ids" gorm:"type:integer[]"`
	LastBookingAt *time.Time    `json:"lastBookingAt,omitempty"`
}
