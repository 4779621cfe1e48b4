package dto

import "bookstay/models"

// AvailabilityInfo số phòng trống của một loại phòng trong một khoảng ngày
type AvailabilityInfo struct {
	RoomTypeID     uint `json:"roomTypeId"`
	TotalUnits     int  `json:"totalUnits"`
	BookedUnits    int  `json:"bookedUnits"`
	AvailableUnits int  `json:"availableUnits"`
	IsFullyBooked  bool `json:"isFullyBooked"`
}

// RoomTypeAvailability loại phòng kèm badge phòng trống cho trang danh sách
type RoomTypeAvailability struct {
	RoomType     models.RoomType  `json:"roomType"`
	Availability AvailabilityInfo `json:"availability"`
}
