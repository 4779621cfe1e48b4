package jobs

import (
	"log"
	"time"

	"bookstay/utils"

	"github.com/robfig/cron/v3"
)

// BookingCompleter định nghĩa interface cho việc hoàn thành booking đến hạn
type BookingCompleter interface {
	AutoCompleteDueBookings(now time.Time) (int, error)
}

var bookingCompleter BookingCompleter

// SetBookingCompleter thiết lập implementation cho BookingCompleter
func SetBookingCompleter(completer BookingCompleter) {
	bookingCompleter = completer
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron) error {
	// Cron job chạy lúc 0h mỗi ngày: hoàn thành các booking đã qua ngày trả phòng
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		if bookingCompleter == nil {
			utils.LogError("BookingCompleter chưa được thiết lập")
			return
		}
		completed, err := bookingCompleter.AutoCompleteDueBookings(now)
		if err != nil {
			utils.LogError("Lỗi khi hoàn thành booking đến hạn: %v", err)
			return
		}
		utils.LogInfo("Đã hoàn thành %d booking qua ngày trả phòng lúc: %v", completed, now)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
