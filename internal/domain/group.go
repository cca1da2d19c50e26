package domain

// Group is a named category a Post may belong to. Slug is the unique
// URL-safe lookup key used in routes.
type Group struct {
	Id          int64
	Title       string
	Slug        string
	Description string
}

func (g *Group) String() string {
	return g.Title
}
