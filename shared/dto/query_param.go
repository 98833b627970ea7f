package dto

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams carries the ordering of repository reads. Listings are never paged.
type QueryParams struct {
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// OrderBy returns QueryParams sorting ascending on column.
func OrderBy(column string) QueryParams {
	return QueryParams{SortBy: column, SortDir: SortDirAsc}
}
