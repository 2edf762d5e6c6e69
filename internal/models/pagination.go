package models

// ProductPage and OrderPage mirror the backend's paginated responses.

type ProductPage struct {
	Content       []Product `json:"content"`
	TotalElements int       `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
}

type OrderPage struct {
	Content       []Order `json:"content"`
	TotalElements int     `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
	Number        int     `json:"number"`
	Size          int     `json:"size"`
}
