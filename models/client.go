package models

// ClientRef is one selectable client from the directory provider.
type ClientRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
