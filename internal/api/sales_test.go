package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/copypoint/cp-backend/internal/authz"
	"github.com/copypoint/cp-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleListSales(t *testing.T) {
	h, m := newTestServer(t)
	m.copypoints.On("GetByID", mock.Anything, int64(8)).
		Return(repository.Copypoint{ID: 8, StoreID: 5, Name: "Mostrador"}, nil)
	m.sales.On("ListByCopypoint", mock.Anything, int64(8)).Return([]repository.Sale{
		{ID: 100, CopypointID: 8, SellerID: 42, TotalCents: 1500, Status: "completed"},
	}, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/stores/5/copypoints/8/sales", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, float64(1500), resp[0]["total_cents"])
}

func TestHandleListSales_CopypointInWrongStore(t *testing.T) {
	h, m := newTestServer(t)
	m.copypoints.On("GetByID", mock.Anything, int64(8)).
		Return(repository.Copypoint{ID: 8, StoreID: 6, Name: "Mostrador"}, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/stores/5/copypoints/8/sales", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	m.sales.AssertNotCalled(t, "ListByCopypoint", mock.Anything, mock.Anything)
}

func TestHandleCreateSale_RecordsSeller(t *testing.T) {
	h, m := newTestServer(t)
	m.copypoints.On("GetByID", mock.Anything, int64(8)).
		Return(repository.Copypoint{ID: 8, StoreID: 5, Name: "Mostrador"}, nil)
	m.sales.On("Create", mock.Anything, int64(8), int64(42), int64(2500)).
		Return(repository.Sale{ID: 101, CopypointID: 8, SellerID: 42, TotalCents: 2500, Status: "completed"}, nil)

	identity := &authz.Identity{ID: 42, Email: "seller@example.com", Status: "active"}
	rec := doJSON(t, h, http.MethodPost, "/api/stores/5/copypoints/8/sales",
		map[string]int64{"total_cents": 2500}, identity)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(42), resp["seller_id"])
}

func TestHandleCreateSale_NoIdentity(t *testing.T) {
	h, m := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/stores/5/copypoints/8/sales",
		map[string]int64{"total_cents": 2500}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	m.sales.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCreateSale_NonPositiveTotal(t *testing.T) {
	h, m := newTestServer(t)
	m.copypoints.On("GetByID", mock.Anything, int64(8)).
		Return(repository.Copypoint{ID: 8, StoreID: 5, Name: "Mostrador"}, nil)

	identity := &authz.Identity{ID: 42, Email: "seller@example.com", Status: "active"}
	rec := doJSON(t, h, http.MethodPost, "/api/stores/5/copypoints/8/sales",
		map[string]int64{"total_cents": 0}, identity)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListEmployees(t *testing.T) {
	h, m := newTestServer(t)
	m.copypoints.On("GetByID", mock.Anything, int64(8)).
		Return(repository.Copypoint{ID: 8, StoreID: 5, Name: "Mostrador"}, nil)
	m.employees.On("ListByCopypoint", mock.Anything, int64(8)).Return([]repository.Employee{
		{UserID: 42, Email: "seller@example.com", CopypointID: 8, RoleName: "copypoint_employee", Active: true},
	}, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/stores/5/copypoints/8/employees", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "copypoint_employee", resp[0]["role"])
}
