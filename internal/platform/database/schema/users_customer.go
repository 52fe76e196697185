package schema

// UserCustomerTable represents the 'users.customer' table
type UserCustomerTable struct {
	Table           string
	UserID          string
	DateOfBirth     string
	TelephoneNumber string
	Country         string
	City            string
	Street          string
	HouseNumber     string
	PostalCode      string
}

// UserCustomer is the schema definition for users.customer, the
// customer-specific extension of users.account.
var UserCustomer = UserCustomerTable{
	Table:           "users.customer",
	UserID:          "userid",
	DateOfBirth:     "dateofbirth",
	TelephoneNumber: "telephonenumber",
	Country:         "country",
	City:            "city",
	Street:          "street",
	HouseNumber:     "housenumber",
	PostalCode:      "postalcode",
}
