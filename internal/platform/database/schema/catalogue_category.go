package schema

// CatalogueCategoryTable represents the 'catalogue.category' table
type CatalogueCategoryTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// CatalogueCategory is the schema definition for catalogue.category
var CatalogueCategory = CatalogueCategoryTable{
	Table: "catalogue.category",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

func (t CatalogueCategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug}
}
