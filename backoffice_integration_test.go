package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/restodesk/backoffice/models"
	"github.com/restodesk/backoffice/router"
	"github.com/restodesk/backoffice/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndBackOffice walks the main flow:
// 1. Register customer "Alice" and seat her at table #5
// 2. Open an order on the table -> Pending, total 0
// 3. Burger x2 -> 19.00, increment -> 28.50, decrement twice -> 9.50
// 4. Final decrement removes the line -> total 0.00
// 5. Complete the order and print the receipt
func TestEndToEndBackOffice(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	// 1. Customer and table
	alice := request(t, r, "POST", "/customers", map[string]interface{}{
		"name":  "Alice",
		"email": "alice@example.com",
		"phone": "0811111111",
	}, http.StatusCreated)
	customerID := uint(alice["id"].(float64))

	tableData := request(t, r, "POST", "/tables", map[string]interface{}{
		"number":      5,
		"capacity":    4,
		"customer_id": customerID,
	}, http.StatusCreated)
	assert.Equal(t, true, tableData["occupied"])
	tableID := uint(tableData["id"].(float64))

	// 2. Open the order
	orderData := request(t, r, "POST", fmt.Sprintf("/tables/%d/orders", tableID), nil, http.StatusCreated)
	assert.Equal(t, "Pending", orderData["status"])
	orderID := uint(orderData["id"].(float64))
	assertTotal(t, db, orderID, "0")

	// 3. Line mutations
	burger := request(t, r, "POST", "/menu-items", map[string]interface{}{
		"name":        "Burger",
		"description": "Beef burger",
		"price":       "9.50",
		"category":    "Main",
	}, http.StatusCreated)
	burgerID := uint(burger["id"].(float64))

	line := request(t, r, "POST", fmt.Sprintf("/orders/%d/items", orderID), map[string]interface{}{
		"menu_item_id": burgerID,
		"quantity":     2,
	}, http.StatusCreated)
	itemID := uint(line["id"].(float64))
	assertTotal(t, db, orderID, "19.00")

	request(t, r, "POST", fmt.Sprintf("/orders/%d/items/%d/increment", orderID, itemID), nil, http.StatusOK)
	assertTotal(t, db, orderID, "28.50")

	request(t, r, "POST", fmt.Sprintf("/orders/%d/items/%d/decrement", orderID, itemID), nil, http.StatusOK)
	request(t, r, "POST", fmt.Sprintf("/orders/%d/items/%d/decrement", orderID, itemID), nil, http.StatusOK)
	assertTotal(t, db, orderID, "9.50")

	// 4. Decrement at quantity 1 removes the line
	request(t, r, "POST", fmt.Sprintf("/orders/%d/items/%d/decrement", orderID, itemID), nil, http.StatusOK)
	assertTotal(t, db, orderID, "0")

	var itemCount int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&itemCount)
	assert.Equal(t, int64(0), itemCount)

	// 5. Complete and print
	status := request(t, r, "PATCH", fmt.Sprintf("/orders/%d/status", orderID), map[string]interface{}{
		"status": "Completed",
	}, http.StatusOK)
	assert.Equal(t, "Completed", status["status"])

	receipt := request(t, r, "GET", fmt.Sprintf("/orders/%d/receipt", orderID), nil, http.StatusOK)
	assert.Equal(t, "Alice", receipt["customer"])
	assert.Equal(t, "0.00", receipt["total"])
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Customer{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Employee{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// request fires one JSON request, asserts the status code and returns the
// decoded data portion of the envelope.
func request(t *testing.T, r *gin.Engine, method, url string, body interface{}, wantCode int) map[string]interface{} {
	var buf *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		buf = bytes.NewBuffer(payload)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, wantCode, w.Code, "unexpected status for %s %s: %s", method, url, w.Body.String())

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	data, _ := response["data"].(map[string]interface{})
	return data
}

func assertTotal(t *testing.T, db *gorm.DB, orderID uint, want string) {
	t.Helper()
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		t.Fatal(err)
	}
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString(want)),
		"total = %s, want %s", order.TotalAmount, want)
}
