package models

// Category is the decision class a sampled issue is routed into.
type Category string

// Category constants
const (
	CategoryArchitectural    Category = "architectural"
	CategoryNonArchitectural Category = "non_architectural"
)

// String returns the stored form of the category.
func (c Category) String() string {
	return string(c)
}
