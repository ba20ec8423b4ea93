package utils

import (
	"strconv"

	"gorm.io/gorm"
)

// Page is one fixed-size window of an ordered listing plus the metadata
// templates need to render next/previous controls.
type Page[T any] struct {
	Items       []T
	Number      int
	NumPages    int
	HasNext     bool
	HasPrevious bool
}

// NextNumber returns the page number after the current one.
func (p Page[T]) NextNumber() int { return p.Number + 1 }

// PreviousNumber returns the page number before the current one.
func (p Page[T]) PreviousNumber() int { return p.Number - 1 }

// Paginate runs the given query windowed to the requested page. The page
// number comes from the ?page= query parameter: absent or non-numeric values
// mean page 1, out-of-range values clamp to the first or last valid page.
func Paginate[T any](query *gorm.DB, pageParam string, pageSize int) (Page[T], error) {
	var zero T
	var total int64
	if err := query.Session(&gorm.Session{}).Model(&zero).Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	numPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if numPages < 1 {
		numPages = 1
	}

	number := 1
	if n, err := strconv.Atoi(pageParam); err == nil && n > 1 {
		number = n
	}
	if number > numPages {
		number = numPages
	}

	// Clone per statement so the caller's query stays reusable.
	var items []T
	if err := query.Session(&gorm.Session{}).Offset((number - 1) * pageSize).Limit(pageSize).Find(&items).Error; err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Items:       items,
		Number:      number,
		NumPages:    numPages,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}, nil
}
