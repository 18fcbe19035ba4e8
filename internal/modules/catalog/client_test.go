package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourplan/internal/types"
)

const louvreJSON = `{
  "id": 3909,
  "name": "Louvre Museum Reserved Access Tickets",
  "city": {"displayName": "Paris", "country": {"displayName": "France", "currency": {"code": "EUR", "symbol": "€"}}},
  "imageUploads": [],
  "media": {"productImages": [{"url": "https://cdn.example/louvre.jpg", "altText": "Pyramid"}]},
  "variants": [
    {"id": 7001, "name": "Reserved Access", "listingPrice": {"currencyCode": "EUR", "originalPrice": 32, "finalPrice": 29.5},
     "tours": [{"id": 9101, "name": "Entry", "duration": 10800000, "minPax": 1, "maxPax": 10}]},
    {"id": 7002, "name": "With Audio Guide", "tours": []}
  ]
}`

const inventoryJSON = `{
  "currencyCode": "EUR",
  "availabilities": [
    {"startDate": "2026-10-20", "startTime": "09:00", "endTime": "09:30", "tourId": 9101, "vendorId": 5,
     "priceProfile": {"priceProfileType": "PER_PERSON", "persons": [{"type": "ADULT", "retailPrice": 32, "listingPrice": 29.5}]}},
    {"startDate": "2026-10-20", "startTime": "11:00", "endTime": "11:30", "tourId": 9101, "vendorId": 5},
    {"startDate": "2026-10-21", "startTime": "09:00", "endTime": "09:30", "tourId": 9101, "vendorId": 5},
    {"startDate": "2026-10-20", "startTime": "10:00", "endTime": "10:30", "tourId": 9102, "vendorId": 5}
  ]
}`

func TestClient_GetExperience(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v6/tour-groups/3909", r.URL.Path)
		_, _ = w.Write([]byte(louvreJSON))
	}))
	defer srv.Close()

	e, err := NewClient(srv.URL, nil, nil).GetExperience(context.Background(), 3909)
	require.NoError(t, err)

	assert.Equal(t, int64(3909), e.ID)
	assert.Equal(t, "EUR", e.Currency)
	assert.Equal(t, "€", e.CurrencySymbol)
	assert.Equal(t, "Paris", e.City)
	assert.Equal(t, "https://cdn.example/louvre.jpg", e.Image)
	assert.Equal(t, "Visit Louvre Museum Reserved Access Tickets and explore this amazing experience.", e.Description)
	require.Len(t, e.Variants, 2)
	assert.Equal(t, int64(7001), e.SelectedVariant)
	assert.Equal(t, 29.5, e.Variants[0].Price)
	assert.Equal(t, []Tour{{ID: 9101, Name: "Entry", Duration: 10800000, MinPax: 1, MaxPax: 10}}, e.Variants[0].Tours)
	assert.Equal(t, "EUR", e.Variants[1].Currency)
}

func TestClient_GetExperienceDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1, "name": "Walk", "description": "A walk."}`))
	}))
	defer srv.Close()

	e, err := NewClient(srv.URL, nil, nil).GetExperience(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "USD", e.Currency)
	assert.Equal(t, placeholderImage, e.Image)
	assert.Equal(t, "A walk.", e.Description)
	assert.Nil(t, e.Variant())
}

func TestClient_GetExperienceStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil, nil).GetExperience(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestClient_GetInventory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v7/tour-groups/3909/inventories/", r.URL.Path)
		assert.Equal(t, "7001", r.URL.Query().Get("variantId"))
		assert.Equal(t, "2026-10-20", r.URL.Query().Get("from-date"))
		assert.Equal(t, "2026-10-27", r.URL.Query().Get("to-date"))
		_, _ = w.Write([]byte(inventoryJSON))
	}))
	defer srv.Close()

	from := types.NewDate(2026, 10, 20)
	ix, err := NewClient(srv.URL, nil, nil).GetInventory(context.Background(), 3909, 7001, from, from.AddDays(7))
	require.NoError(t, err)

	day := ix.Windows(9101, "2026-10-20")
	require.Len(t, day, 2)
	assert.Equal(t, "09:00", day[0].StartTime)
	assert.Equal(t, "11:00", day[1].StartTime)
	assert.Equal(t, 29.5, day[0].PriceProfile.Persons[0].ListingPrice)
	assert.Len(t, ix.Windows(9101, "2026-10-21"), 1)
	assert.Len(t, ix.Windows(9102, "2026-10-20"), 1)
	assert.Nil(t, ix.Windows(9999, "2026-10-20"))
}
