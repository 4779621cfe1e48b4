package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type RoomType struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	HotelID     uint            `json:"hotelId" gorm:"index"`
	Label       string          `json:"label"` // Loại phòng: Deluxe, Suite...
	Price       float64         `json:"price"` // Giá mỗi đêm
	Discount    int             `json:"discount" gorm:"default:0"`
	TotalUnits  int             `json:"totalUnits"`
	MaxGuests   int             `json:"maxGuests"`
	Active      bool            `json:"active" gorm:"default:true"`
	Description string          `json:"description"`
	Avatar      string          `json:"avatar"`
	Img         json.RawMessage `json:"img" gorm:"type:json"`
	NumBed      int             `json:"numBed"`
	NumTolet    int             `json:"numTolet"`
	Acreage     int             `json:"acreage"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	Hotel       Hotel           `json:"hotel" gorm:"foreignKey:HotelID"`
}

func (rt *RoomType) Validate() error {
	if rt.Discount < 0 || rt.Discount > 100 {
		return fmt.Errorf("invalid discount: %d, must be between 0 and 100", rt.Discount)
	}
	if rt.TotalUnits <= 0 {
		return fmt.Errorf("invalid totalUnits: %d, must be positive", rt.TotalUnits)
	}
	if rt.Price < 0 {
		return fmt.Errorf("invalid price: %.2f, must not be negative", rt.Price)
	}
	return nil
}

// NightlyPrice giá mỗi đêm sau khi trừ giảm giá
func (rt *RoomType) NightlyPrice() float64 {
	return rt.Price * float64(100-rt.Discount) / 100
}
