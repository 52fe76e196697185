package schema

// CatalogueContactInfoTable represents the 'catalogue.contactinfo' table
type CatalogueContactInfoTable struct {
	Table           string
	ID              string
	OfferID         string
	Email           string
	TelephoneNumber string
	SocialMediaLink string
}

// CatalogueContactInfo is the schema definition for catalogue.contactinfo
var CatalogueContactInfo = CatalogueContactInfoTable{
	Table:           "catalogue.contactinfo",
	ID:              "id",
	OfferID:         "offerid",
	Email:           "email",
	TelephoneNumber: "telephonenumber",
	SocialMediaLink: "socialmedialink",
}
