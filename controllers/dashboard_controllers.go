package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restodesk/backoffice/models"
	"github.com/restodesk/backoffice/utils"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type popularItem struct {
	Name      string `json:"name"`
	ItemCount int64  `json:"count"`
}

// GetDashboardStats recomputes every dashboard aggregate on each request:
// counts, weekly sales from the most recent Monday, the four most ordered
// dishes and occupancy rates for today / past week / past month.
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := today.AddDate(0, 0, -7)
	monthAgo := today.AddDate(0, 0, -30)

	var stats struct {
		TotalOrders      int64 `json:"total_orders"`
		TotalOrdersWeek  int64 `json:"total_orders_week"`
		TotalOrdersMonth int64 `json:"total_orders_month"`

		TotalCustomers      int64 `json:"total_customers"`
		TotalCustomersWeek  int64 `json:"total_customers_week"`
		TotalCustomersMonth int64 `json:"total_customers_month"`

		TotalMenuItems int64 `json:"total_menu_items"`
		TotalEmployees int64 `json:"total_employees"`
		TotalTables    int64 `json:"total_tables"`
		OccupiedTables int64 `json:"occupied_tables"`

		WeeklySales  []float64     `json:"weekly_sales"`
		PopularItems []popularItem `json:"popular_items"`

		OccupancyRate      float64 `json:"occupancy_rate"`
		OccupancyRateWeek  float64 `json:"occupancy_rate_week"`
		OccupancyRateMonth float64 `json:"occupancy_rate_month"`
	}

	dc.DB.Model(&models.Order{}).Where("created_at >= ?", today).Count(&stats.TotalOrders)
	dc.DB.Model(&models.Order{}).Where("created_at >= ?", weekAgo).Count(&stats.TotalOrdersWeek)
	dc.DB.Model(&models.Order{}).Where("created_at >= ?", monthAgo).Count(&stats.TotalOrdersMonth)

	dc.DB.Model(&models.Customer{}).Count(&stats.TotalCustomers)
	dc.DB.Model(&models.Customer{}).Where("created_at >= ?", weekAgo).Count(&stats.TotalCustomersWeek)
	dc.DB.Model(&models.Customer{}).Where("created_at >= ?", monthAgo).Count(&stats.TotalCustomersMonth)

	dc.DB.Model(&models.MenuItem{}).Count(&stats.TotalMenuItems)
	dc.DB.Model(&models.Employee{}).Count(&stats.TotalEmployees)
	dc.DB.Model(&models.Table{}).Count(&stats.TotalTables)
	dc.DB.Model(&models.Table{}).Where("occupied = ?", true).Count(&stats.OccupiedTables)

	stats.WeeklySales = dc.weeklySales(today)
	stats.PopularItems = dc.popularItems()

	// Occupancy windows count occupied tables whose last update falls
	// inside the window; zero tables means a 0 rate, not a division.
	if stats.TotalTables > 0 {
		var occToday, occWeek, occMonth int64
		dc.DB.Model(&models.Table{}).
			Where("occupied = ? AND updated_at >= ?", true, today).
			Count(&occToday)
		dc.DB.Model(&models.Table{}).
			Where("occupied = ? AND updated_at >= ?", true, weekAgo).
			Count(&occWeek)
		dc.DB.Model(&models.Table{}).
			Where("occupied = ? AND updated_at >= ?", true, monthAgo).
			Count(&occMonth)

		stats.OccupancyRate = float64(occToday) / float64(stats.TotalTables) * 100
		stats.OccupancyRateWeek = float64(occWeek) / float64(stats.TotalTables) * 100
		stats.OccupancyRateMonth = float64(occMonth) / float64(stats.TotalTables) * 100
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// weeklySales sums order totals per day for the 7 days starting at the most
// recent Monday. Days without orders contribute 0.
func (dc *DashboardController) weeklySales(today time.Time) []float64 {
	offset := (int(today.Weekday()) + 6) % 7
	weekStart := today.AddDate(0, 0, -offset)

	sales := make([]float64, 0, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		next := day.AddDate(0, 0, 1)

		var total float64
		dc.DB.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", day, next).
			Select("COALESCE(SUM(total_amount), 0)").
			Row().Scan(&total)
		sales = append(sales, total)
	}
	return sales
}

// popularItems returns the top 4 dishes by number of order lines referencing
// them. Ties beyond the count are left to the store's ordering.
func (dc *DashboardController) popularItems() []popularItem {
	items := make([]popularItem, 0, 4)
	dc.DB.Model(&models.OrderItem{}).
		Select("menu_items.name AS name, COUNT(order_items.id) AS item_count").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Group("menu_items.id, menu_items.name").
		Order("item_count DESC").
		Limit(4).
		Scan(&items)
	return items
}
