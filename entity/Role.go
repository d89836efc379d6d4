package entity

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
	RoleDelivery   Role = "delivery"
)

func (r Role) IsAdmin() bool { return r == RoleAdmin || r == RoleSuperAdmin }
