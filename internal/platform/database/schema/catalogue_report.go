package schema

// CatalogueReportTable represents the 'catalogue.report' table
type CatalogueReportTable struct {
	Table      string
	ID         string
	OfferID    string
	ReporterID string
	Reason     string
	CreatedAt  string
}

// CatalogueReport is the schema definition for catalogue.report
var CatalogueReport = CatalogueReportTable{
	Table:      "catalogue.report",
	ID:         "id",
	OfferID:    "offerid",
	ReporterID: "reporterid",
	Reason:     "reason",
	CreatedAt:  "createdat",
}
