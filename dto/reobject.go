package dto

import (
	"io"

	"realty/models"
)

// ObjectFilters are the optional equality filters for the object list.
// A nil field means "not filtered by this".
type ObjectFilters struct {
	ObjectTypeID *uint `json:"objectTypeId,omitempty"`
	DealTypeID   *uint `json:"dealTypeId,omitempty"`
	StatusID     *uint `json:"statusId,omitempty"`
}

// Empty reports whether no filter field is set.
func (f ObjectFilters) Empty() bool {
	return f.ObjectTypeID == nil && f.DealTypeID == nil && f.StatusID == nil
}

// REObjectRequest carries the scalar fields of a property record for
// create/update. Catalog references travel as ids; the backend resolves
// them into nested entities on the way back.
type REObjectRequest struct {
	Rooms        int     `json:"rooms"`
	Floors       int     `json:"floors"`
	Square       float64 `json:"square"`
	Street       string  `json:"street"`
	Building     int     `json:"building"`
	RoomNum      *int    `json:"roomnum,omitempty"`
	Price        int     `json:"price"`
	DealTypeID   uint    `json:"dealTypeId"`
	ObjectTypeID uint    `json:"objectTypeId"`
	StatusID     uint    `json:"statusId"`
}

// Upload is one file attached to a multipart create/update.
type Upload struct {
	FileName string
	Content  io.Reader
}

// PagedObjects mirrors the backend's paginated object list payload.
type PagedObjects struct {
	Items       []models.REObject `json:"items"`
	TotalCount  int               `json:"totalCount"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
}
