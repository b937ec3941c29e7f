package usecase

import "ministry/internal/domain/constants"

// PageInput carries the skip/limit query parameters shared by list endpoints.
type PageInput struct {
	Skip  int `query:"skip" validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0,lte=100"`
}

// Normalize clamps the page into the supported range. A zero limit selects the default.
func (p PageInput) Normalize() PageInput {
	if p.Skip < 0 {
		p.Skip = 0
	}
	switch {
	case p.Limit <= 0:
		p.Limit = constants.DefaultPageLimit
	case p.Limit > constants.MaxPageLimit:
		p.Limit = constants.MaxPageLimit
	}

	return p
}

// Page is one ordered slice of a listing together with the total match count.
type Page[T any] struct {
	Items []*T  `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}
