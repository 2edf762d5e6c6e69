package directory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/cache"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/config"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/directory"
	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*directory.Client, *int) {
	t.Helper()

	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := &config.Directory{BaseURL: server.URL, Timeout: 5 * time.Second}

	return directory.NewClient(cfg, cache.NewMemoryCache(), time.Hour), &calls
}

func TestProvinces(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Sorted By Name", func(t *testing.T) {
		// Arrange
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/p/", r.URL.Path)
			w.Write([]byte(`[
				{"code": 79, "name": "Thành phố Hồ Chí Minh"},
				{"code": 1, "name": "Thành phố Hà Nội"}
			]`))
		})

		// Act
		provinces, err := client.Provinces(ctx)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, provinces, 2)
		assert.Equal(t, "Thành phố Hà Nội", provinces[0].Name)
		assert.Equal(t, "Thành phố Hồ Chí Minh", provinces[1].Name)
	})

	t.Run("Success - Second Lookup Served From Cache", func(t *testing.T) {
		// Arrange
		client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"code": 1, "name": "Thành phố Hà Nội"}]`))
		})
		_, err := client.Provinces(ctx)
		assert.NoError(t, err)

		// Act
		provinces, err := client.Provinces(ctx)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, provinces, 1)
		assert.Equal(t, 1, *calls)
	})

	t.Run("Failure - Upstream Error Propagates", func(t *testing.T) {
		// Arrange
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		// Act
		provinces, err := client.Provinces(ctx)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, provinces)
	})
}

func TestDistricts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Unwrapped From The Parent Province", func(t *testing.T) {
		// Arrange
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/p/1", r.URL.Path)
			assert.Equal(t, "2", r.URL.Query().Get("depth"))
			w.Write([]byte(`{
				"code": 1,
				"name": "Thành phố Hà Nội",
				"districts": [
					{"code": 6, "name": "Quận Hoàn Kiếm"},
					{"code": 5, "name": "Quận Ba Đình"}
				]
			}`))
		})

		// Act
		districts, err := client.Districts(ctx, 1)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, districts, 2)
		assert.Equal(t, "Quận Ba Đình", districts[0].Name)
	})

	t.Run("Success - Memoized Per Province Code", func(t *testing.T) {
		// Arrange
		client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"districts": [{"code": 5, "name": "Quận Ba Đình"}]}`))
		})
		_, err := client.Districts(ctx, 1)
		assert.NoError(t, err)

		// Act: same parent hits the cache, a different parent does not.
		_, err = client.Districts(ctx, 1)
		assert.NoError(t, err)
		_, err = client.Districts(ctx, 79)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 2, *calls)
	})
}

func TestWards(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Unwrapped From The Parent District", func(t *testing.T) {
		// Arrange
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/d/5", r.URL.Path)
			w.Write([]byte(`{
				"code": 5,
				"name": "Quận Ba Đình",
				"wards": [{"code": 100, "name": "Phường Cống Vị"}]
			}`))
		})

		// Act
		wards, err := client.Wards(ctx, 5)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, wards, 1)
		assert.Equal(t, "Phường Cống Vị", wards[0].Name)
	})
}
