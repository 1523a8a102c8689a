package dto

// Page is an optional keyset page request; Limit 0 means "everything".
type Page struct {
	Limit  int64
	Cursor string
}
