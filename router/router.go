package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restodesk/backoffice/controllers"
	"github.com/restodesk/backoffice/middlewares"
	"github.com/restodesk/backoffice/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Registered before the routes so it is part of every handler chain.
	rateLimiter := middlewares.NewRateLimiter(50, 100)
	r.Use(rateLimiter.RateLimit())

	// One shared service so every order mutation goes through the same
	// per-order locks.
	orderSvc := services.NewOrderService(db)

	customerCtrl := controllers.NewCustomerController(db)
	tableCtrl := controllers.NewTableController(db)
	menuCtrl := controllers.NewMenuController(db, orderSvc)
	orderCtrl := controllers.NewOrderController(db, orderSvc)
	employeeCtrl := controllers.NewEmployeeController(db)
	dashboardCtrl := controllers.NewDashboardController(db)
	receiptCtrl := controllers.NewReceiptController(db)

	customers := r.Group("/customers")
	{
		customers.GET("", customerCtrl.GetAllCustomers)
		customers.POST("", customerCtrl.CreateCustomer)
		customers.GET("/:customer_id", customerCtrl.GetCustomerByID)
		customers.PATCH("/:customer_id", customerCtrl.UpdateCustomer)
		customers.DELETE("/:customer_id", customerCtrl.DeleteCustomer)
	}

	tables := r.Group("/tables")
	{
		tables.GET("", tableCtrl.GetAllTables)
		tables.POST("", tableCtrl.CreateTable)
		tables.GET("/:table_id", tableCtrl.GetTableByID)
		tables.PATCH("/:table_id", tableCtrl.UpdateTable)
		tables.DELETE("/:table_id", tableCtrl.DeleteTable)
		tables.POST("/:table_id/orders", orderCtrl.CreateOrder)
	}

	menu := r.Group("/menu-items")
	{
		menu.GET("", menuCtrl.GetAllMenuItems)
		menu.POST("", menuCtrl.CreateMenuItem)
		menu.GET("/:item_id", menuCtrl.GetMenuItemByID)
		menu.PATCH("/:item_id", menuCtrl.UpdateMenuItem)
		menu.DELETE("/:item_id", menuCtrl.DeleteMenuItem)
	}

	orders := r.Group("/orders")
	{
		orders.GET("", orderCtrl.GetAllOrders)
		orders.GET("/:order_id", orderCtrl.GetOrderByID)
		orders.PATCH("/:order_id/status", orderCtrl.ChangeOrderStatus)
		orders.DELETE("/:order_id", orderCtrl.DeleteOrder)
		orders.GET("/:order_id/receipt", receiptCtrl.GetOrderReceipt)

		orders.POST("/:order_id/items", orderCtrl.AddOrderItem)
		orders.PATCH("/:order_id/items/:item_id", orderCtrl.UpdateOrderItem)
		orders.POST("/:order_id/items/:item_id/increment", orderCtrl.IncrementOrderItem)
		orders.POST("/:order_id/items/:item_id/decrement", orderCtrl.DecrementOrderItem)
		orders.DELETE("/:order_id/items/:item_id", orderCtrl.DeleteOrderItem)
	}

	employees := r.Group("/employees")
	{
		employees.GET("", employeeCtrl.GetAllEmployees)
		employees.POST("", employeeCtrl.CreateEmployee)
		employees.GET("/:employee_id", employeeCtrl.GetEmployeeByID)
		employees.PATCH("/:employee_id", employeeCtrl.UpdateEmployee)
		employees.DELETE("/:employee_id", employeeCtrl.DeleteEmployee)
	}

	r.GET("/dashboard", dashboardCtrl.GetDashboardStats)

	return r
}
