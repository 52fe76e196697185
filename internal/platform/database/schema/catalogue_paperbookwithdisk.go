package schema

// CataloguePaperBookWithDiskTable represents the 'catalogue.paperbookwithdisk' table
type CataloguePaperBookWithDiskTable struct {
	Table           string
	BookID          string
	NumberOfPages   string
	DurationInHours string
	DiskFormat      string
	IsDiskGlued     string
}

// CataloguePaperBookWithDisk is the schema definition for catalogue.paperbookwithdisk
var CataloguePaperBookWithDisk = CataloguePaperBookWithDiskTable{
	Table:           "catalogue.paperbookwithdisk",
	BookID:          "bookid",
	NumberOfPages:   "numberofpages",
	DurationInHours: "durationinhours",
	DiskFormat:      "diskformat",
	IsDiskGlued:     "isdiskglued",
}
