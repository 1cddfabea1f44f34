package users

// Roles recognised by the directory.
const (
	RoleRep     = "rep"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// User is a directory entry. Authentication is handled upstream; this service
// only reads role and activity flags.
type User struct {
	ID       string `bson:"_id"`
	Name     string `bson:"name"`
	Phone    string `bson:"phone"`
	Role     string `bson:"role"`
	IsActive bool   `bson:"isActive"`
}
