package domain

// Item is one selectable student: an opaque id plus the label shown to the operator.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// StudentPage is one page of the paginated student pool.
// PrevPage and NextPage are zero when there is no such page.
type StudentPage struct {
	Items    []Item `json:"items"`
	Page     int    `json:"page"`
	PrevPage int    `json:"prev_page,omitempty"`
	NextPage int    `json:"next_page,omitempty"`
}
