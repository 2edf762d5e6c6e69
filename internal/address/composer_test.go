package address_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/address"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/directory"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) Provinces(ctx context.Context) ([]directory.Unit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]directory.Unit), args.Error(1)
}

func (m *mockDirectory) Districts(ctx context.Context, provinceCode int) ([]directory.Unit, error) {
	args := m.Called(ctx, provinceCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]directory.Unit), args.Error(1)
}

func (m *mockDirectory) Wards(ctx context.Context, districtCode int) ([]directory.Unit, error) {
	args := m.Called(ctx, districtCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]directory.Unit), args.Error(1)
}

func newLoadedComposer(t *testing.T, mockDir *mockDirectory) *address.Composer {
	t.Helper()

	ctx := context.Background()

	mockDir.On("Provinces", ctx).Return([]directory.Unit{
		{Code: 1, Name: "Thành phố Hà Nội"},
		{Code: 79, Name: "Thành phố Hồ Chí Minh"},
	}, nil).Once()

	composer := address.NewComposer(mockDir, nil)
	composer.Load(ctx)

	return composer
}

func TestSelectProvince(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Loads Districts", func(t *testing.T) {
		// Arrange
		mockDir := new(mockDirectory)
		composer := newLoadedComposer(t, mockDir)
		mockDir.On("Districts", ctx, 1).Return([]directory.Unit{
			{Code: 5, Name: "Quận Ba Đình"},
		}, nil).Once()

		// Act
		composer.SelectProvince(ctx, 1)

		// Assert
		selection := composer.Selection()
		assert.Equal(t, "1", selection.ProvinceCode)
		assert.Equal(t, "Thành phố Hà Nội", selection.Province)
		assert.Equal(t, address.LevelLoaded, composer.DistrictState())
		assert.Len(t, composer.Districts(), 1)
		mockDir.AssertExpectations(t)
	})

	t.Run("Success - Switching Province Invalidates District And Ward", func(t *testing.T) {
		// Arrange
		mockDir := new(mockDirectory)
		composer := newLoadedComposer(t, mockDir)
		mockDir.On("Districts", ctx, 1).Return([]directory.Unit{{Code: 5, Name: "Quận Ba Đình"}}, nil).Once()
		mockDir.On("Wards", ctx, 5).Return([]directory.Unit{{Code: 100, Name: "Phường Cống Vị"}}, nil).Once()
		composer.SelectProvince(ctx, 1)
		composer.SelectDistrict(ctx, 5)
		composer.SelectWard(100)
		mockDir.On("Districts", ctx, 79).Return([]directory.Unit{{Code: 760, Name: "Quận 1"}}, nil).Once()

		// Act
		composer.SelectProvince(ctx, 79)

		// Assert
		selection := composer.Selection()
		assert.Equal(t, "Thành phố Hồ Chí Minh", selection.Province)
		assert.Empty(t, selection.District)
		assert.Empty(t, selection.DistrictCode)
		assert.Empty(t, selection.Ward)
		assert.Empty(t, selection.WardCode)
		assert.Empty(t, composer.Wards())
		assert.Equal(t, address.LevelUnselected, composer.WardState())
		mockDir.AssertExpectations(t)
	})

	t.Run("Failure - District Load Error Leaves Level Unselected", func(t *testing.T) {
		// Arrange
		mockDir := new(mockDirectory)
		composer := newLoadedComposer(t, mockDir)
		mockDir.On("Districts", ctx, 1).Return(nil, errors.New("gateway timeout")).Once()

		// Act
		composer.SelectProvince(ctx, 1)

		// Assert
		assert.Equal(t, address.LevelUnselected, composer.DistrictState())
		assert.Empty(t, composer.Districts())
		assert.Equal(t, "Thành phố Hà Nội", composer.Selection().Province)
		mockDir.AssertExpectations(t)
	})
}

func TestSelectDistrict(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Switching District Drops Ward", func(t *testing.T) {
		// Arrange
		mockDir := new(mockDirectory)
		composer := newLoadedComposer(t, mockDir)
		mockDir.On("Districts", ctx, 1).Return([]directory.Unit{
			{Code: 5, Name: "Quận Ba Đình"},
			{Code: 6, Name: "Quận Hoàn Kiếm"},
		}, nil).Once()
		mockDir.On("Wards", ctx, 5).Return([]directory.Unit{{Code: 100, Name: "Phường Cống Vị"}}, nil).Once()
		composer.SelectProvince(ctx, 1)
		composer.SelectDistrict(ctx, 5)
		composer.SelectWard(100)
		mockDir.On("Wards", ctx, 6).Return([]directory.Unit{{Code: 200, Name: "Phường Hàng Bạc"}}, nil).Once()

		// Act
		composer.SelectDistrict(ctx, 6)

		// Assert
		selection := composer.Selection()
		assert.Equal(t, "Quận Hoàn Kiếm", selection.District)
		assert.Empty(t, selection.Ward)
		assert.Empty(t, selection.WardCode)
		assert.Equal(t, address.LevelLoaded, composer.WardState())
		mockDir.AssertExpectations(t)
	})
}

func TestSelectionChangeCallback(t *testing.T) {
	t.Run("Success - Callback Receives Derived Full Address", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		mockDir := new(mockDirectory)
		mockDir.On("Provinces", ctx).Return([]directory.Unit{{Code: 1, Name: "Thành phố Hà Nội"}}, nil).Once()
		mockDir.On("Districts", ctx, 1).Return([]directory.Unit{{Code: 5, Name: "Quận Ba Đình"}}, nil).Once()
		mockDir.On("Wards", ctx, 5).Return([]directory.Unit{{Code: 100, Name: "Phường Cống Vị"}}, nil).Once()

		var last models.AddressSelection

		composer := address.NewComposer(mockDir, func(selection models.AddressSelection) {
			last = selection
		})
		composer.Load(ctx)

		// Act
		composer.SelectProvince(ctx, 1)
		composer.SelectDistrict(ctx, 5)
		composer.SelectWard(100)
		composer.SetStreet("12 Đội Cấn")

		// Assert
		assert.Equal(t, "12 Đội Cấn, Phường Cống Vị, Quận Ba Đình, Thành phố Hà Nội", last.FullAddress)
		mockDir.AssertExpectations(t)
	})
}

func TestFormatFullAddress(t *testing.T) {
	t.Run("All Parts Present", func(t *testing.T) {
		assert.Equal(t,
			"12 Đội Cấn, Phường Cống Vị, Quận Ba Đình, Thành phố Hà Nội",
			address.FormatFullAddress("12 Đội Cấn", "Phường Cống Vị", "Quận Ba Đình", "Thành phố Hà Nội"))
	})

	t.Run("Missing Parts Are Skipped Without Dangling Separators", func(t *testing.T) {
		assert.Equal(t,
			"Phường Cống Vị, Thành phố Hà Nội",
			address.FormatFullAddress("", "Phường Cống Vị", "", "Thành phố Hà Nội"))
	})

	t.Run("Street Only", func(t *testing.T) {
		assert.Equal(t, "12 Đội Cấn", address.FormatFullAddress("12 Đội Cấn", "", "", ""))
	})

	t.Run("All Empty", func(t *testing.T) {
		assert.Equal(t, "", address.FormatFullAddress("", "", "", ""))
	})
}
