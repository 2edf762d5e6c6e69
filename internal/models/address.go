package models

// AddressSelection is the structured state of the three-level address picker
// plus the free-text street line. FullAddress is always derived from the four
// text fields; it is never edited independently.
type AddressSelection struct {
	ProvinceCode string `json:"provinceCode"`
	Province     string `json:"province"`
	DistrictCode string `json:"districtCode"`
	District     string `json:"district"`
	WardCode     string `json:"wardCode"`
	Ward         string `json:"ward"`
	Street       string `json:"street"`
	FullAddress  string `json:"fullAddress"`
}
