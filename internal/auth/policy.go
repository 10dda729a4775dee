package auth

import "library-store/internal/domain/role"

type Operation string

const (
	OpListCustomers Operation = "customers.list"
	OpViewCustomer  Operation = "customers.view"
	OpNewCustomer   Operation = "customers.new"
	OpEditCustomer  Operation = "customers.edit"
	OpSaveCustomer  Operation = "customers.save"
	OpReadCatalog   Operation = "catalog.read"
)

var (
	owner        = role.Normalize(role.Owner)
	storeManager = role.Normalize(role.StoreManager)
	user         = role.Normalize(role.User)
)

// policy maps each guarded operation to the normalized roles allowed to run it.
var policy = map[Operation][]string{
	OpListCustomers: {owner, storeManager},
	OpViewCustomer:  {owner, storeManager},
	OpNewCustomer:   {owner},
	OpEditCustomer:  {owner},
	OpSaveCustomer:  {owner},
	OpReadCatalog:   {owner, storeManager, user},
}

// Allowed reports whether any of roles may perform op. Unknown operations
// are denied.
func Allowed(op Operation, roles []string) bool {
	allowed, ok := policy[op]
	if !ok {
		return false
	}
	for _, r := range roles {
		r = role.Normalize(r)
		for _, a := range allowed {
			if r == a {
				return true
			}
		}
	}
	return false
}

func AllowedRoles(op Operation) []string {
	return append([]string(nil), policy[op]...)
}
