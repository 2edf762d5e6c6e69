package address

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/directory"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
)

// LevelState tracks one picker level: nothing chosen yet, options being
// fetched, or options ready.
type LevelState int

const (
	LevelUnselected LevelState = iota
	LevelLoading
	LevelLoaded
)

// Directory is the slice of the directory client the composer needs.
type Directory interface {
	Provinces(ctx context.Context) ([]directory.Unit, error)
	Districts(ctx context.Context, provinceCode int) ([]directory.Unit, error)
	Wards(ctx context.Context, districtCode int) ([]directory.Unit, error)
}

// Composer turns the three-level location picker plus a street line into one
// canonical address string. The hierarchy is strictly top-down: choosing a
// new ancestor always invalidates everything below it.
type Composer struct {
	dir      Directory
	onChange func(models.AddressSelection)

	provinces []directory.Unit
	districts []directory.Unit
	wards     []directory.Unit

	provinceState LevelState
	districtState LevelState
	wardState     LevelState

	selection models.AddressSelection
}

// NewComposer wires the directory collaborator and the change callback the
// parent receives the structured selection plus full address through.
func NewComposer(dir Directory, onChange func(models.AddressSelection)) *Composer {
	return &Composer{
		dir:      dir,
		onChange: onChange,
	}
}

// Load fetches the province list. A failure leaves the list empty and only
// logs; the rest of the form stays usable.
func (c *Composer) Load(ctx context.Context) {

	c.provinceState = LevelLoading

	provinces, err := c.dir.Provinces(ctx)
	if err != nil {
		slog.Error("Failed to load provinces", slog.String("error", err.Error()))
		c.provinces = nil
		c.provinceState = LevelUnselected

		return
	}

	c.provinces = provinces
	c.provinceState = LevelLoaded
}

func (c *Composer) Provinces() []directory.Unit { return c.provinces }
func (c *Composer) Districts() []directory.Unit { return c.districts }
func (c *Composer) Wards() []directory.Unit     { return c.wards }

func (c *Composer) DistrictState() LevelState { return c.districtState }
func (c *Composer) WardState() LevelState     { return c.wardState }

// SelectProvince records the choice, invalidates district and ward outright,
// and loads the district options for the new province.
func (c *Composer) SelectProvince(ctx context.Context, code int) {

	c.selection.ProvinceCode = strconv.Itoa(code)
	c.selection.Province = nameOf(c.provinces, code)
	c.selection.DistrictCode = ""
	c.selection.District = ""
	c.selection.WardCode = ""
	c.selection.Ward = ""

	c.districts = nil
	c.wards = nil
	c.wardState = LevelUnselected
	c.districtState = LevelLoading

	districts, err := c.dir.Districts(ctx, code)
	if err != nil {
		slog.Error("Failed to load districts",
			slog.Int("province_code", code),
			slog.String("error", err.Error()))
		c.districtState = LevelUnselected
		c.notify()

		return
	}

	c.districts = districts
	c.districtState = LevelLoaded
	c.notify()
}

// SelectDistrict applies the same cascade one level down: the ward selection
// and options are dropped before the new ward list loads.
func (c *Composer) SelectDistrict(ctx context.Context, code int) {

	c.selection.DistrictCode = strconv.Itoa(code)
	c.selection.District = nameOf(c.districts, code)
	c.selection.WardCode = ""
	c.selection.Ward = ""

	c.wards = nil
	c.wardState = LevelLoading

	wards, err := c.dir.Wards(ctx, code)
	if err != nil {
		slog.Error("Failed to load wards",
			slog.Int("district_code", code),
			slog.String("error", err.Error()))
		c.wardState = LevelUnselected
		c.notify()

		return
	}

	c.wards = wards
	c.wardState = LevelLoaded
	c.notify()
}

func (c *Composer) SelectWard(code int) {

	c.selection.WardCode = strconv.Itoa(code)
	c.selection.Ward = nameOf(c.wards, code)

	c.notify()
}

func (c *Composer) SetStreet(street string) {

	c.selection.Street = street

	c.notify()
}

// Selection returns the current structured choice with FullAddress derived.
func (c *Composer) Selection() models.AddressSelection {

	selection := c.selection
	selection.FullAddress = FormatFullAddress(selection.Street, selection.Ward, selection.District, selection.Province)

	return selection
}

func (c *Composer) notify() {
	if c.onChange != nil {
		c.onChange(c.Selection())
	}
}

// FormatFullAddress joins whichever parts are non-empty, most specific first,
// with a fixed separator. All-empty input yields the empty string.
func FormatFullAddress(street, ward, district, province string) string {

	parts := make([]string, 0, 4)

	for _, part := range []string{street, ward, district, province} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}

func nameOf(units []directory.Unit, code int) string {

	for _, unit := range units {
		if unit.Code == code {
			return unit.Name
		}
	}

	return ""
}
