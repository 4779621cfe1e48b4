package dto

import (
	"encoding/json"
	"time"

	"bookstay/models"
)

// SearchFilters bộ lọc tìm kiếm khách sạn, lưu lại cho lần tìm sau
type SearchFilters struct {
	Province   string     `json:"province,omitempty"`
	District   string     `json:"district,omitempty"`
	Name       string     `json:"name,omitempty"`
	NumBed     *int       `json:"numBed,omitempty"`
	NumTolet   *int       `json:"numTolet,omitempty"`
	PriceMin   *int       `json:"priceMin,omitempty"`
	PriceMax   *int       `json:"priceMax,omitempty"`
	Guests     *int       `json:"guests,omitempty"`
	FromDate   *time.Time `json:"fromDate,omitempty"`
	ToDate     *time.Time `json:"toDate,omitempty"`
	Status     *int       `json:"status,omitempty"`
	OnlyActive bool       `json:"onlyActive,omitempty"`
}

// CreateHotelRequest là DTO cho request tạo khách sạn
type CreateHotelRequest struct {
	Name             string          `json:"name" binding:"required" validate:"required"`
	Address          string          `json:"address" binding:"required" validate:"required"`
	Province         string          `json:"province"`
	District         string          `json:"district"`
	Ward             string          `json:"ward"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	Avatar           string          `json:"avatar"`
	Img              json.RawMessage `json:"img"`
	TimeCheckIn      string          `json:"timeCheckIn"`
	TimeCheckOut     string          `json:"timeCheckOut"`
	Longitude        float64         `json:"longitude"`
	Latitude         float64         `json:"latitude"`
	Num              int             `json:"num" validate:"min=0,max=5"`
}

type HotelResponse struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	Province         string          `json:"province"`
	District         string          `json:"district"`
	Ward             string          `json:"ward"`
	ShortDescription string          `json:"shortDescription"`
	Avatar           string          `json:"avatar"`
	Img              json.RawMessage `json:"img"`
	Status           int             `json:"status"`
	LowestPrice      float64         `json:"lowestPrice"`
	Num              int             `json:"num"`
	Longitude        float64         `json:"longitude"`
	Latitude         float64         `json:"latitude"`
}

// HotelDetailResponse chi tiết khách sạn kèm badge phòng trống theo loại phòng
type HotelDetailResponse struct {
	HotelResponse
	Description  string                 `json:"description"`
	TimeCheckIn  string                 `json:"timeCheckIn"`
	TimeCheckOut string                 `json:"timeCheckOut"`
	RoomTypes    []RoomTypeAvailability `json:"roomTypes"`
}

// ScoredHotel khách sạn kèm điểm phù hợp khi tìm kiếm mờ
type ScoredHotel struct {
	Hotel models.Hotel `json:"hotel"`
	Score int          `json:"score"`
}
