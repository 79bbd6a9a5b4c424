package model

import "time"

type User struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	Avatar      map[string]string `json:"avatar"`
	Coins       int               `json:"coins"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
