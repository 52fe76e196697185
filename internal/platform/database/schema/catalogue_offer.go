package schema

// CatalogueOfferTable represents the 'catalogue.offer' table
type CatalogueOfferTable struct {
	Table          string
	ID             string
	BookID         string
	OwnerID        string
	Price          string
	NumberOfCopies string
	PublishState   string
	Roles          string
	PublishingTime string
	Discount       string
	EndDate        string
	CreatedAt      string
	UpdatedAt      string
}

// CatalogueOffer is the schema definition for catalogue.offer.
// Roles holds the comma-delimited role list ("BASIC,DISCOUNT").
var CatalogueOffer = CatalogueOfferTable{
	Table:          "catalogue.offer",
	ID:             "id",
	BookID:         "bookid",
	OwnerID:        "ownerid",
	Price:          "price",
	NumberOfCopies: "numberofcopies",
	PublishState:   "publishstate",
	Roles:          "roles",
	PublishingTime: "publishingtime",
	Discount:       "discount",
	EndDate:        "enddate",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t CatalogueOfferTable) Columns() []string {
	return []string{
		t.ID, t.BookID, t.OwnerID, t.Price, t.NumberOfCopies,
		t.PublishState, t.Roles, t.PublishingTime, t.Discount, t.EndDate,
	}
}
