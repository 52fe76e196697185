package schema

// CatalogueBookCategoryTable represents the 'catalogue.bookcategory' link table
type CatalogueBookCategoryTable struct {
	Table      string
	BookID     string
	CategoryID string
}

// CatalogueBookCategory is the schema definition for catalogue.bookcategory
var CatalogueBookCategory = CatalogueBookCategoryTable{
	Table:      "catalogue.bookcategory",
	BookID:     "bookid",
	CategoryID: "categoryid",
}
