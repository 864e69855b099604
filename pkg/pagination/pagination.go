package pagination

// Bounds describes the default and maximum page size of one endpoint.
type Bounds struct {
	DefaultLimit int
	MaxLimit     int
}

var (
	// Public is used by the guest location search.
	Public = Bounds{DefaultLimit: 10, MaxLimit: 50}
	// Moderation is used by owner and admin location listings.
	Moderation = Bounds{DefaultLimit: 20, MaxLimit: 100}
	// Favorites is used by the favorites listing.
	Favorites = Bounds{DefaultLimit: 12, MaxLimit: 50}
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit into range.
func (b Bounds) Normalize(p Params) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	p.Limit = b.NormalizeLimit(p.Limit)
	return p
}

// NormalizeLimit enforces the default and maximum limits.
func (b Bounds) NormalizeLimit(limit int) int {
	if limit <= 0 {
		return b.DefaultLimit
	}
	if b.MaxLimit > 0 && limit > b.MaxLimit {
		return b.MaxLimit
	}
	return limit
}

// Offset is the number of rows to skip for the page.
func (p Params) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Pages returns how many pages of size limit hold total rows.
func Pages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
