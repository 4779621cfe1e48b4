package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type Hotel struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	UserID           uint            `json:"userId"` // Chủ khách sạn
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime"`
	Avatar           string          `json:"avatar"`
	Img              json.RawMessage `json:"img" gorm:"type:json"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	Status           int             `json:"status"`
	User             User            `json:"user" gorm:"foreignKey:UserID"`
	RoomTypes        []RoomType      `json:"roomTypes" gorm:"foreignKey:HotelID"`
	TimeCheckIn      string          `json:"timeCheckIn"`
	TimeCheckOut     string          `json:"timeCheckOut"`
	Province         string          `json:"province"`
	District         string          `json:"district"`
	Ward             string          `json:"ward"`
	Longitude        float64         `json:"longitude"`
	Latitude         float64         `json:"latitude"`
	LowestPrice      float64         `json:"lowestPrice"`
	Num              int             `json:"num"` // Xếp hạng sao
}

func (h *Hotel) ValidateStatus() error {
	if h.Status < 0 || h.Status > 4 {
		return fmt.Errorf("invalid Status: %d, must be between 0 and 4", h.Status)
	}
	return nil
}
