package schema

// CatalogueImageTable represents the 'catalogue.image' table
type CatalogueImageTable struct {
	Table     string
	ID        string
	BookID    string
	Data      string
	Format    string
	IsPreview string
	CreatedAt string
}

// CatalogueImage is the schema definition for catalogue.image
var CatalogueImage = CatalogueImageTable{
	Table:     "catalogue.image",
	ID:        "id",
	BookID:    "bookid",
	Data:      "data",
	Format:    "format",
	IsPreview: "ispreview",
	CreatedAt: "createdat",
}
