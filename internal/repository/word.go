package repository

// ListWordQuery holds the raw filter and order_by expressions of a list request.
type ListWordQuery struct {
	Pagination
	FilterOrder
}
