package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin222aman/LocalFixConnect/internal/api/handlers"
	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
)

type bookingListResponse struct {
	Bookings []entities.Booking `json:"bookings"`
	Count    int                `json:"count"`
}

func TestBookingsHandler_CreateBooking(t *testing.T) {
	t.Run("defaults to pending status", func(t *testing.T) {
		handler := handlers.NewBookingsHandler(newTestStorage(t))

		body := `{"customerId":"cust-1","providerId":"prov-1","estimatedDuration":90,"estimatedCost":"120.00","notes":"Leaking sink"}`
		req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateBooking(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var booking entities.Booking
		require.NoError(t, json.NewDecoder(w.Body).Decode(&booking))
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, entities.BookingStatusPending, booking.Status)
		require.NotNil(t, booking.EstimatedDuration)
		assert.Equal(t, 90, *booking.EstimatedDuration)
		require.NotNil(t, booking.EstimatedCost)
		assert.Equal(t, entities.Decimal("120.00"), *booking.EstimatedCost)
		assert.Nil(t, booking.ActualCost)
	})

	t.Run("keeps an explicit status", func(t *testing.T) {
		handler := handlers.NewBookingsHandler(newTestStorage(t))

		body := `{"customerId":"cust-1","providerId":"prov-1","status":"confirmed"}`
		req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateBooking(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var booking entities.Booking
		require.NoError(t, json.NewDecoder(w.Body).Decode(&booking))
		assert.Equal(t, entities.BookingStatusConfirmed, booking.Status)
	})

	t.Run("returns bad request for missing parties", func(t *testing.T) {
		handler := handlers.NewBookingsHandler(newTestStorage(t))

		body := `{"customerId":"cust-1"}`
		req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateBooking(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookingsHandler_GetBooking(t *testing.T) {
	t.Run("returns the booking", func(t *testing.T) {
		storage := newTestStorage(t)
		handler := handlers.NewBookingsHandler(storage)

		created, err := storage.CreateBooking(context.Background(), entities.NewBooking{
			CustomerID: "cust-1",
			ProviderID: "prov-1",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/bookings/"+created.ID, nil)
		req.SetPathValue("id", created.ID)
		w := httptest.NewRecorder()

		handler.GetBooking(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var booking entities.Booking
		require.NoError(t, json.NewDecoder(w.Body).Decode(&booking))
		assert.Equal(t, created.ID, booking.ID)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		handler := handlers.NewBookingsHandler(newTestStorage(t))

		req := httptest.NewRequest("GET", "/api/bookings/ghost", nil)
		req.SetPathValue("id", "ghost")
		w := httptest.NewRecorder()

		handler.GetBooking(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookingsHandler_ListBookings(t *testing.T) {
	seedBookings := func(t *testing.T, storage repositories.Storage) {
		t.Helper()
		ctx := context.Background()
		_, err := storage.CreateBooking(ctx, entities.NewBooking{CustomerID: "cust-1", ProviderID: "prov-1"})
		require.NoError(t, err)
		_, err = storage.CreateBooking(ctx, entities.NewBooking{CustomerID: "cust-1", ProviderID: "prov-2", Status: entities.BookingStatusCompleted})
		require.NoError(t, err)
		_, err = storage.CreateBooking(ctx, entities.NewBooking{CustomerID: "cust-2", ProviderID: "prov-1"})
		require.NoError(t, err)
	}

	t.Run("lists everything without filters", func(t *testing.T) {
		storage := newTestStorage(t)
		handler := handlers.NewBookingsHandler(storage)
		seedBookings(t, storage)

		req := httptest.NewRequest("GET", "/api/bookings", nil)
		w := httptest.NewRecorder()

		handler.ListBookings(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response bookingListResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, 3, response.Count)
	})

	t.Run("combines query filters", func(t *testing.T) {
		storage := newTestStorage(t)
		handler := handlers.NewBookingsHandler(storage)
		seedBookings(t, storage)

		req := httptest.NewRequest("GET", "/api/bookings?customerId=cust-1&status=pending", nil)
		w := httptest.NewRecorder()

		handler.ListBookings(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response bookingListResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		require.Equal(t, 1, response.Count)
		assert.Equal(t, "cust-1", response.Bookings[0].CustomerID)
		assert.Equal(t, entities.BookingStatusPending, response.Bookings[0].Status)
	})

	t.Run("returns an empty list for an unmatched filter", func(t *testing.T) {
		storage := newTestStorage(t)
		handler := handlers.NewBookingsHandler(storage)
		seedBookings(t, storage)

		req := httptest.NewRequest("GET", "/api/bookings?providerId=prov-99", nil)
		w := httptest.NewRecorder()

		handler.ListBookings(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response bookingListResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, 0, response.Count)
		assert.NotNil(t, response.Bookings)
	})
}

func TestBookingsHandler_UpdateBooking(t *testing.T) {
	t.Run("records completion", func(t *testing.T) {
		storage := newTestStorage(t)
		handler := handlers.NewBookingsHandler(storage)

		created, err := storage.CreateBooking(context.Background(), entities.NewBooking{
			CustomerID: "cust-1",
			ProviderID: "prov-1",
		})
		require.NoError(t, err)

		body := `{"status":"completed","actualCost":"145.50"}`
		req := httptest.NewRequest("PATCH", "/api/bookings/"+created.ID, strings.NewReader(body))
		req.SetPathValue("id", created.ID)
		w := httptest.NewRecorder()

		handler.UpdateBooking(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var booking entities.Booking
		require.NoError(t, json.NewDecoder(w.Body).Decode(&booking))
		assert.Equal(t, entities.BookingStatusCompleted, booking.Status)
		require.NotNil(t, booking.ActualCost)
		assert.Equal(t, entities.Decimal("145.50"), *booking.ActualCost)
		assert.Equal(t, created.CustomerID, booking.CustomerID)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		handler := handlers.NewBookingsHandler(newTestStorage(t))

		body := `{"status":"cancelled"}`
		req := httptest.NewRequest("PATCH", "/api/bookings/ghost", strings.NewReader(body))
		req.SetPathValue("id", "ghost")
		w := httptest.NewRecorder()

		handler.UpdateBooking(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
