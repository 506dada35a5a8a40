package model

// ReferenceKind selects which user-scoped reference table an operation
// targets. The two kinds share one resolver algorithm but never mix rows.
type ReferenceKind string

const (
	KindTag        ReferenceKind = "tag"
	KindIngredient ReferenceKind = "ingredient"
)

// Reference is the kind-neutral view of a Tag or Ingredient row, used by the
// resolver and the reference endpoints so they can carry one algorithm for
// both kinds.
type Reference struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"-"`
	Name   string `json:"name"`
}

// AsReference converts a tag row to the neutral view.
func (t Tag) AsReference() Reference {
	return Reference{ID: t.ID, UserID: t.UserID, Name: t.Name}
}

// AsReference converts an ingredient row to the neutral view.
func (i Ingredient) AsReference() Reference {
	return Reference{ID: i.ID, UserID: i.UserID, Name: i.Name}
}
