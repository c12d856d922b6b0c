package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

const feedPayload = `{
	"listings": [
		{
			"id": "fh-100",
			"property_type": "Single Family",
			"address": "4120 Avenue G",
			"city": "Austin",
			"state": "TX",
			"zip_code": "78751",
			"price": "$385,000",
			"bedrooms": 3,
			"bathrooms": "2",
			"square_feet": "1,850",
			"year_built": 2004,
			"monthly_rent": 2450
		},
		{
			"id": "fh-101",
			"property_type": "Condo",
			"city": "Austin",
			"state": "TX",
			"price": 540000
		},
		{
			"id": "",
			"price": 100000
		}
	]
}`

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/listings", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedPayload))
	})
	mux.HandleFunc("/listings/fh-100", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "fh-100",
			"description": "renovated 2019",
			"features": ["garage", "fenced yard"],
			"lot_size": "7,500"
		}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFeedAdapterSearch(t *testing.T) {
	srv := feedServer(t)
	adapter := NewFeedAdapter("HomeScout", KindResidential, srv.URL, 0)
	ctx := context.Background()

	t.Run("MapsListings", func(t *testing.T) {
		records, err := adapter.Search(ctx, Query{Location: "Austin"})
		require.NoError(t, err)
		require.Len(t, records, 2, "listings without an id are dropped")

		rec := records[0]
		assert.Equal(t, "HomeScout", rec.Source)
		assert.Equal(t, "fh-100", rec.ID)
		assert.InDelta(t, 385000, rec.Price, 1e-9, "display-text price is parsed")
		require.NotNil(t, rec.Bathrooms)
		assert.InDelta(t, 2, *rec.Bathrooms, 1e-9)
		require.NotNil(t, rec.SquareFeet)
		assert.InDelta(t, 1850, *rec.SquareFeet, 1e-9)
		require.NotNil(t, rec.MonthlyRent)
		assert.InDelta(t, 2450, *rec.MonthlyRent, 1e-9)
		require.NotNil(t, rec.RentalYield, "records are normalized on the way in")
	})

	t.Run("EstimatesMissingRent", func(t *testing.T) {
		records, err := adapter.Search(ctx, Query{Location: "Austin"})
		require.NoError(t, err)

		condo := records[1]
		require.NotNil(t, condo.MonthlyRent)
		assert.InDelta(t, 3800, *condo.MonthlyRent, 1e-9, "0.7% of 540000, rounded to $50")
	})

	t.Run("HonorsMaxResults", func(t *testing.T) {
		records, err := adapter.Search(ctx, Query{Location: "Austin", MaxResults: 1})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestFeedAdapterFetchDetails(t *testing.T) {
	srv := feedServer(t)
	adapter := NewFeedAdapter("HomeScout", KindResidential, srv.URL, 0)
	ctx := context.Background()

	base := property.New(property.Record{
		Source: "HomeScout", ID: "fh-100", PropertyType: "Single Family",
		Price: 385000, MonthlyRent: property.Float(2450),
		Description: "",
	})

	t.Run("FillsGapsOnly", func(t *testing.T) {
		enriched, err := adapter.FetchDetails(ctx, base)
		require.NoError(t, err)

		assert.Equal(t, "renovated 2019", enriched.Description)
		assert.Equal(t, []string{"garage", "fenced yard"}, enriched.Features)
		require.NotNil(t, enriched.LotSize)
		assert.InDelta(t, 7500, *enriched.LotSize, 1e-9)

		// Fields the search listing already carried stay put.
		require.NotNil(t, enriched.MonthlyRent)
		assert.InDelta(t, 2450, *enriched.MonthlyRent, 1e-9)
		assert.InDelta(t, 385000, enriched.Price, 1e-9)
	})

	t.Run("InputUnmodified", func(t *testing.T) {
		_, err := adapter.FetchDetails(ctx, base)
		require.NoError(t, err)
		assert.Empty(t, base.Description)
	})

	t.Run("MissingID", func(t *testing.T) {
		rec := &property.Record{Source: "HomeScout"}
		out, err := adapter.FetchDetails(ctx, rec)
		assert.Error(t, err)
		assert.Same(t, rec, out)
	})

	t.Run("NotFoundReturnsInputWithError", func(t *testing.T) {
		rec := property.New(property.Record{Source: "HomeScout", ID: "nope", Price: 1})
		out, err := adapter.FetchDetails(ctx, rec)
		assert.Error(t, err)
		assert.Same(t, rec, out)
	})
}

func TestFeedAdapterErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("NonOKStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		t.Cleanup(srv.Close)

		adapter := NewFeedAdapter("HomeScout", KindResidential, srv.URL, 0)
		_, err := adapter.Search(ctx, Query{Location: "Austin"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 502")
	})

	t.Run("MalformedBody", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))
		t.Cleanup(srv.Close)

		adapter := NewFeedAdapter("HomeScout", KindResidential, srv.URL, 0)
		_, err := adapter.Search(ctx, Query{Location: "Austin"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode")
	})

	t.Run("ServerDown", func(t *testing.T) {
		adapter := NewFeedAdapter("HomeScout", KindResidential, "http://127.0.0.1:1", 0)
		_, err := adapter.Search(ctx, Query{Location: "Austin"})
		assert.Error(t, err)
	})
}

func TestFeedAdapterQueryEncoding(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		_, _ = w.Write([]byte(`{"listings": []}`))
	}))
	t.Cleanup(srv.Close)

	adapter := NewFeedAdapter("HomeScout", KindResidential, srv.URL, 0)
	_, err := adapter.Search(context.Background(), Query{
		Location:     "Austin, TX",
		PropertyType: "condo",
		MinPrice:     200000,
		MaxPrice:     600000,
		MaxResults:   25,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"location":      "Austin, TX",
		"property_type": "condo",
		"min_price":     "200000",
		"max_price":     "600000",
		"limit":         "25",
	}, gotQuery)
}
