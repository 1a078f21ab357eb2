package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/restodesk/backoffice/models"
)

func TestCreateOrderRequiresSeatedCustomer(t *testing.T) {
	r, db := setupTestRouter(t)
	table := seedTable(t, db, 1, 4, nil)

	w, _ := doJSON(t, r, "POST", fmt.Sprintf("/tables/%d/orders", table.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateOrderDefaults(t *testing.T) {
	r, db := setupTestRouter(t)
	customer := seedCustomer(t, db, "Alice", "alice@example.com", "0811111111")
	table := seedTable(t, db, 1, 4, &customer.ID)

	w, resp := doJSON(t, r, "POST", fmt.Sprintf("/tables/%d/orders", table.ID), nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Pending", data["status"])
	assert.Equal(t, float64(customer.ID), data["customer_id"])

	orderID := uint(data["id"].(float64))
	assert.True(t, fetchOrderTotal(t, db, orderID).IsZero())
}

func TestCreateOrderUnknownTable(t *testing.T) {
	r, _ := setupTestRouter(t)
	w, _ := doJSON(t, r, "POST", "/tables/9999/orders", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChangeOrderStatus(t *testing.T) {
	r, db := setupTestRouter(t)
	customer := seedCustomer(t, db, "Alice", "alice@example.com", "0811111111")
	table := seedTable(t, db, 1, 4, &customer.ID)

	_, resp := doJSON(t, r, "POST", fmt.Sprintf("/tables/%d/orders", table.ID), nil)
	orderID := uint(resp["data"].(map[string]interface{})["id"].(float64))
	url := fmt.Sprintf("/orders/%d/status", orderID)

	// An unknown status is rejected, not silently dropped
	w, _ := doJSON(t, r, "PATCH", url, map[string]interface{}{"status": "Delivered"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var stored models.Order
	assert.NoError(t, db.First(&stored, orderID).Error)
	assert.Equal(t, models.OrderPending, stored.Status)

	w, resp = doJSON(t, r, "PATCH", url, map[string]interface{}{"status": "In Progress"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "In Progress", resp["data"].(map[string]interface{})["status"])
}

func TestOrderItemEndpointsKeepTotalConsistent(t *testing.T) {
	r, db := setupTestRouter(t)
	customer := seedCustomer(t, db, "Alice", "alice@example.com", "0811111111")
	table := seedTable(t, db, 5, 4, &customer.ID)
	burger := seedMenuItem(t, db, "Burger", "9.50")

	_, resp := doJSON(t, r, "POST", fmt.Sprintf("/tables/%d/orders", table.ID), nil)
	orderID := uint(resp["data"].(map[string]interface{})["id"].(float64))

	// Add Burger x2 -> 19.00
	w, resp := doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/items", orderID), map[string]interface{}{
		"menu_item_id": burger.ID,
		"quantity":     2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	itemID := uint(resp["data"].(map[string]interface{})["id"].(float64))
	assert.True(t, fetchOrderTotal(t, db, orderID).Equal(decimal.RequireFromString("19.00")))

	// Increment -> 28.50
	w, _ = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/items/%d/increment", orderID, itemID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, fetchOrderTotal(t, db, orderID).Equal(decimal.RequireFromString("28.50")))

	// Decrement twice -> 9.50
	doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/items/%d/decrement", orderID, itemID), nil)
	doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/items/%d/decrement", orderID, itemID), nil)
	assert.True(t, fetchOrderTotal(t, db, orderID).Equal(decimal.RequireFromString("9.50")))

	// Final decrement removes the item
	w, resp = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/items/%d/decrement", orderID, itemID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Order item removed", resp["message"])
	assert.True(t, fetchOrderTotal(t, db, orderID).IsZero())

	var itemCount int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&itemCount)
	assert.Equal(t, int64(0), itemCount)
}

func TestAddOrderItemValidation(t *testing.T) {
	r, db := setupTestRouter(t)
	customer := seedCustomer(t, db, "Alice", "alice@example.com", "0811111111")
	table := seedTable(t, db, 1, 4, &customer.ID)
	burger := seedMenuItem(t, db, "Burger", "9.50")

	_, resp := doJSON(t, r, "POST", fmt.Sprintf("/tables/%d/orders", table.ID), nil)
	orderID := uint(resp["data"].(map[string]interface{})["id"].(float64))

	w, _ := doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/items", orderID), map[string]interface{}{
		"menu_item_id": burger.ID,
		"quantity":     0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/items", orderID), map[string]interface{}{
		"menu_item_id": 9999,
		"quantity":     1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrderItemRecomputes(t *testing.T) {
	r, db := setupTestRouter(t)
	customer := seedCustomer(t, db, "Alice", "alice@example.com", "0811111111")
	table := seedTable(t, db, 1, 4, &customer.ID)
	burger := seedMenuItem(t, db, "Burger", "9.50")
	soda := seedMenuItem(t, db, "Soda", "2.00")

	_, resp := doJSON(t, r, "POST", fmt.Sprintf("/tables/%d/orders", table.ID), nil)
	orderID := uint(resp["data"].(map[string]interface{})["id"].(float64))

	_, resp = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/items", orderID), map[string]interface{}{
		"menu_item_id": burger.ID,
		"quantity":     1,
	})
	burgerLine := uint(resp["data"].(map[string]interface{})["id"].(float64))
	doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/items", orderID), map[string]interface{}{
		"menu_item_id": soda.ID,
		"quantity":     2,
	})
	assert.True(t, fetchOrderTotal(t, db, orderID).Equal(decimal.RequireFromString("13.50")))

	w, _ := doJSON(t, r, "DELETE", fmt.Sprintf("/orders/%d/items/%d", orderID, burgerLine), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, fetchOrderTotal(t, db, orderID).Equal(decimal.RequireFromString("4.00")))
}

func TestDeleteOrderCascades(t *testing.T) {
	r, db := setupTestRouter(t)
	customer := seedCustomer(t, db, "Alice", "alice@example.com", "0811111111")
	table := seedTable(t, db, 1, 4, &customer.ID)
	burger := seedMenuItem(t, db, "Burger", "9.50")

	_, resp := doJSON(t, r, "POST", fmt.Sprintf("/tables/%d/orders", table.ID), nil)
	orderID := uint(resp["data"].(map[string]interface{})["id"].(float64))
	doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/items", orderID), map[string]interface{}{
		"menu_item_id": burger.ID,
		"quantity":     2,
	})

	w, _ := doJSON(t, r, "DELETE", fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.Equal(t, int64(0), orders)
	assert.Equal(t, int64(0), items)
}

func TestOrderReceipt(t *testing.T) {
	r, db := setupTestRouter(t)
	customer := seedCustomer(t, db, "Alice", "alice@example.com", "0811111111")
	table := seedTable(t, db, 5, 4, &customer.ID)
	burger := seedMenuItem(t, db, "Burger", "9.50")

	_, resp := doJSON(t, r, "POST", fmt.Sprintf("/tables/%d/orders", table.ID), nil)
	orderID := uint(resp["data"].(map[string]interface{})["id"].(float64))
	doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/items", orderID), map[string]interface{}{
		"menu_item_id": burger.ID,
		"quantity":     2,
	})

	w, resp := doJSON(t, r, "GET", fmt.Sprintf("/orders/%d/receipt", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Alice", data["customer"])
	assert.Equal(t, "19.00", data["total"])
	assert.Contains(t, data["receipt_number"], "RCP/")

	items := data["items"].([]interface{})
	assert.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, "Burger", line["name"])
	assert.Equal(t, "19.00", line["subtotal"])
}
