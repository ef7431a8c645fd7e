package dto

// DateParams selects an operating day; empty means today.
type DateParams struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}
