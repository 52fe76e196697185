package schema

// CatalogueFavouriteOfferTable represents the 'catalogue.favouriteoffer' table
type CatalogueFavouriteOfferTable struct {
	Table      string
	ID         string
	OfferID    string
	CustomerID string
	Note       string
	CreatedAt  string
}

// CatalogueFavouriteOffer is the schema definition for catalogue.favouriteoffer
var CatalogueFavouriteOffer = CatalogueFavouriteOfferTable{
	Table:      "catalogue.favouriteoffer",
	ID:         "id",
	OfferID:    "offerid",
	CustomerID: "customerid",
	Note:       "note",
	CreatedAt:  "createdat",
}
