package repository

// Pagination holds pagination parameters for listing entities.
// A zero PageSize means no limit.
type Pagination struct {
	PageNo   int32
	PageSize int32
}

func (p *Pagination) Offset() int32 {
	if p.PageNo <= 1 || p.PageSize <= 0 {
		return 0
	}
	return (p.PageNo - 1) * p.PageSize
}

// Window returns the [start, end) bounds of the page within total items.
func (p *Pagination) Window(total int) (int, int) {
	start := int(p.Offset())
	if start > total {
		start = total
	}
	if p.PageSize <= 0 {
		return start, total
	}
	end := start + int(p.PageSize)
	if end > total {
		end = total
	}
	return start, end
}

type FilterOrder struct {
	Filter  string
	OrderBy string
}

func (fo *FilterOrder) GetFilter() string { return fo.Filter }

func (fo *FilterOrder) GetOrderBy() string { return fo.OrderBy }
