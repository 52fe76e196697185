package schema

// CatalogueBookTable represents the 'catalogue.book' table
type CatalogueBookTable struct {
	Table            string
	ID               string
	Kind             string
	Name             string
	YearOfPublishing string
	Description      string
	Author           string
	ISBN             string
	CreatedAt        string
	UpdatedAt        string
}

// CatalogueBook is the schema definition for catalogue.book
var CatalogueBook = CatalogueBookTable{
	Table:            "catalogue.book",
	ID:               "id",
	Kind:             "kind",
	Name:             "name",
	YearOfPublishing: "yearofpublishing",
	Description:      "description",
	Author:           "author",
	ISBN:             "isbn",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

func (t CatalogueBookTable) Columns() []string {
	return []string{t.ID, t.Kind, t.Name, t.YearOfPublishing, t.Description, t.Author, t.ISBN}
}
