// Package pagination partitions ordered result sets into fixed-size,
// 1-indexed pages. A request beyond the last page clamps to the last
// valid page instead of erroring.
package pagination

// Page describes one slice of an ordered listing.
type Page struct {
	Number int // 1-indexed, already clamped into range
	Size   int
	Total  int // total number of pages, at least 1
	Count  int // total number of items
}

// New computes page metadata for a listing of count items. The requested
// number is clamped into [1, total]; an empty listing yields a single
// empty page.
func New(requested, size, count int) Page {
	total := (count + size - 1) / size
	if total < 1 {
		total = 1
	}
	if requested < 1 {
		requested = 1
	}
	if requested > total {
		requested = total
	}
	return Page{Number: requested, Size: size, Total: total, Count: count}
}

// Offset returns the number of items preceding this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.Total }
func (p Page) Prev() int     { return p.Number - 1 }
func (p Page) Next() int     { return p.Number + 1 }

// Numbers lists all page numbers, for pagination links.
func (p Page) Numbers() []int {
	nums := make([]int, p.Total)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}
