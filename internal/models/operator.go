package models

// Operator is an API account allowed to browse and export lists.
// It is unrelated to the USERS document collection.
type Operator struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
