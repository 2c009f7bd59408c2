package models

type User struct {
	ID          string   `json:"id"`
	UserName    string   `json:"userName"`
	FullName    string   `json:"fullName"`
	PhoneNumber string   `json:"phoneNumber"`
	Roles       []string `json:"roles"`
}

// CurrentUser is the detailed profile of the authenticated principal,
// including the reservations they own.
type CurrentUser struct {
	User
	Reservations []Reservation `json:"reservations"`
}

// HasRole reports whether the user carries the given role claim.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
