package models

// CreatorRole tags rows created through the admin console or a vendor login.
type CreatorRole string

const (
	RoleAdmin  CreatorRole = "Admin"
	RoleVendor CreatorRole = "Vendor"
)

func (r CreatorRole) Valid() bool {
	return r == RoleAdmin || r == RoleVendor
}
