package types

import "time"

type BaseEntity struct {
	CreatedAt *time.Time `json:"created_at" db:"created_at" label:"created at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at" label:"updated at"`
}

type SoftDelete struct {
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at" label:"deleted at"`
}
