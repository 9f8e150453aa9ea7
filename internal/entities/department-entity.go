package entities

import "report-system/pkg/types"

type Department struct {
	ID   int64  `json:"id" db:"id" label:"ID"`
	Name string `json:"name" db:"name" label:"department"`

	types.BaseEntity
}

func (Department) TableName() string { return "departments" }
