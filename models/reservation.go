package models

import "time"

type ResStatus struct {
	ID         uint   `json:"id"`
	StatusType string `json:"statusType"`
}

type Reservation struct {
	ID          uint       `json:"id"`
	ObjectID    uint       `json:"objectId"`
	UserID      string     `json:"userId"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	ResStatusID uint       `json:"resStatusId"`
	Object      *REObject  `json:"object,omitempty"`
	ResStatus   *ResStatus `json:"resStatus,omitempty"`
	User        *User      `json:"user,omitempty"`
}
