package handlers

import (
	"context"
	"strings"
	"testing"

	"store-dashboard/internal/services"
)

const testCSV = `Date,Invoice_ID,Product_Category,Product_Name,Quantity,Unit_Price,Cost_Price,Discount,Payment_Method,Customer_Type,Store_Type
2026-02-01,INV0001,Grocery,Rice 5kg,1,100,80,0,Cash,Regular,Offline
2026-02-01,INV0002,Snacks,Chips Box,1,60,40,0,UPI,Member,Online
2026-02-02,INV0003,Grocery,Rice 5kg,1,100,80,0,Card,Member,Offline`

func createTestDashboard(t *testing.T) *services.Dashboard {
	t.Helper()
	d := services.NewDashboard()
	if _, err := d.Load(context.Background(), "test.csv", strings.NewReader(testCSV)); err != nil {
		t.Fatalf("load test dataset: %v", err)
	}
	return d
}
