package repository

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Pagination is an offset/limit window over rows in primary key order.
type Pagination struct {
	Offset int
	Limit  int
}

// normalized clamps the window to sane bounds.
func (p Pagination) normalized() Pagination {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
