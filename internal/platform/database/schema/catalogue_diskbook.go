package schema

// CatalogueDiskBookTable represents the 'catalogue.diskbook' table
type CatalogueDiskBookTable struct {
	Table           string
	BookID          string
	DurationInHours string
	DiskFormat      string
}

// CatalogueDiskBook is the schema definition for catalogue.diskbook
var CatalogueDiskBook = CatalogueDiskBookTable{
	Table:           "catalogue.diskbook",
	BookID:          "bookid",
	DurationInHours: "durationinhours",
	DiskFormat:      "diskformat",
}
