package dto

import (
	"encoding/json"
	"time"
)

// CreateRoomTypeRequest là DTO cho request tạo loại phòng
type CreateRoomTypeRequest struct {
	HotelID     uint            `json:"hotelId" binding:"required"`
	Label       string          `json:"label" binding:"required"`
	Price       float64         `json:"price" binding:"required"`
	Discount    int             `json:"discount"`
	TotalUnits  int             `json:"totalUnits" binding:"required"`
	MaxGuests   int             `json:"maxGuests"`
	Description string          `json:"description"`
	Avatar      string          `json:"avatar"`
	Img         json.RawMessage `json:"img"`
	NumBed      int             `json:"numBed"`
	NumTolet    int             `json:"numTolet"`
	Acreage     int             `json:"acreage"`
}

// UpdateRoomTypeRequest là DTO cho request cập nhật loại phòng
type UpdateRoomTypeRequest struct {
	ID          uint            `json:"id" binding:"required"`
	Label       string          `json:"label"`
	Price       float64         `json:"price"`
	Discount    *int            `json:"discount"`
	TotalUnits  *int            `json:"totalUnits"`
	MaxGuests   *int            `json:"maxGuests"`
	Active      *bool           `json:"active"`
	Description string          `json:"description"`
	Avatar      string          `json:"avatar"`
	Img         json.RawMessage `json:"img"`
}

type RoomTypeResponse struct {
	ID          uint      `json:"id"`
	HotelID     uint      `json:"hotelId"`
	Label       string    `json:"label"`
	Price       float64   `json:"price"`
	Discount    int       `json:"discount"`
	TotalUnits  int       `json:"totalUnits"`
	MaxGuests   int       `json:"maxGuests"`
	Active      bool      `json:"active"`
	Description string    `json:"description"`
	Avatar      string    `json:"avatar"`
	NumBed      int       `json:"numBed"`
	NumTolet    int       `json:"numTolet"`
	Acreage     int       `json:"acreage"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Parent      Parents   `json:"parent"`
}

// Parents là DTO cho thông tin khách sạn cha của loại phòng
type Parents struct {
	Id   uint   `json:"id"`
	Name string `json:"name"`
}
