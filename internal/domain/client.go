package domain

import (
	"errors"
)

// ErrUsernameCollision indicates that a generated username is already taken.
var ErrUsernameCollision = errors.New("username collision")

// Address holds the postal address of a client.
type Address struct {
	StreetNumber string `json:"streetNumber"`
	StreetName   string `json:"streetName"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

// Client holds client identity data.
type Client struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Address   Address `json:"address"`
}

// Identity is the set of fake identity attributes used to create a client.
type Identity struct {
	FirstName string
	LastName  string
	Password  string
	Address   Address
}
