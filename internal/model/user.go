package model

import "strings"

// User is the authenticated account as returned by the API.
type User struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	ID       int64  `json:"id"`
}

// Initial returns the upper-cased first letter of the user's name, used as an avatar.
func (u User) Initial() string {
	for _, r := range u.FullName {
		return strings.ToUpper(string(r))
	}
	return "?"
}
