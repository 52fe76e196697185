package schema

// CataloguePaperBookTable represents the 'catalogue.paperbook' table
type CataloguePaperBookTable struct {
	Table         string
	BookID        string
	NumberOfPages string
}

// CataloguePaperBook is the schema definition for catalogue.paperbook
var CataloguePaperBook = CataloguePaperBookTable{
	Table:         "catalogue.paperbook",
	BookID:        "bookid",
	NumberOfPages: "numberofpages",
}
