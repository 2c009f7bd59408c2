package models

type DealType struct {
	ID       uint   `json:"id"`
	DealName string `json:"dealName"`
}

type ObjectType struct {
	ID       uint   `json:"id"`
	TypeName string `json:"typeName"`
}

type Status struct {
	ID         uint   `json:"id"`
	StatusName string `json:"statusName"`
}

type ObjectImage struct {
	ID   uint   `json:"id"`
	Path string `json:"path"`
}

// REObject is a property record as the backend returns it: scalar
// attributes plus resolved catalog references and attached images.
type REObject struct {
	ID           uint          `json:"id"`
	Rooms        int           `json:"rooms"`
	Floors       int           `json:"floors"`
	Square       float64       `json:"square"`
	Street       string        `json:"street"`
	Building     int           `json:"building"`
	RoomNum      *int          `json:"roomnum,omitempty"`
	Price        int           `json:"price"`
	DealTypeID   uint          `json:"dealTypeId"`
	ObjectTypeID uint          `json:"objectTypeId"`
	StatusID     uint          `json:"statusId"`
	DealType     DealType      `json:"dealType"`
	ObjectType   ObjectType    `json:"objectType"`
	Status       Status        `json:"status"`
	Images       []ObjectImage `json:"objectImages"`
}
