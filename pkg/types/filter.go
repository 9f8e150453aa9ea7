package types

// Filter - параметры выборки из query string.
//
//	/api/reports/contacts?search=edlund&sort=-last_name&filter[department_id]=1&limit=10&offset=0
type Filter struct {
	Search string                 `json:"search,omitempty"`
	Sort   []string               `json:"sort,omitempty" validate:"omitempty,dive,sort_field"`
	Filter map[string]interface{} `json:"filter,omitempty"`
	Limit  int                    `json:"limit" validate:"gte=0"`
	Offset int                    `json:"offset" validate:"gte=0"`
}
