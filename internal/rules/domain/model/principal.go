package model

// Principal is the already-verified identity issuing an operation. An empty
// UID means the request is unauthenticated.
type Principal struct {
	UID string `json:"uid"`
}

// Authenticated reports whether a verified uid is present.
func (p Principal) Authenticated() bool {
	return p.UID != ""
}

// Roles is the capability set derived from the principal's own user document.
// The zero value carries no capabilities, which is what an unauthenticated
// request or a principal without a profile document resolves to.
type Roles struct {
	UID         string
	IsAdmin     bool
	IsShopOwner bool
	IsEmployee  bool
	ShopID      string
	ShopName    string
}

// RolesFromProfile derives the capability set from a user document. A nil
// profile yields a uid-only capability set: a principal whose profile does
// not exist yet can still act on their own document.
func RolesFromProfile(uid string, profile Document) Roles {
	roles := Roles{UID: uid}
	if !profile.Exists() {
		return roles
	}
	if v, ok := profile.Bool(FieldIsAdmin); ok {
		roles.IsAdmin = v
	}
	if v, ok := profile.Bool(FieldIsShopOwner); ok {
		roles.IsShopOwner = v
	}
	if v, ok := profile.Bool(FieldIsEmployee); ok {
		roles.IsEmployee = v
	}
	if v, ok := profile.String(FieldShopID); ok {
		roles.ShopID = v
	}
	if v, ok := profile.String(FieldShopName); ok {
		roles.ShopName = v
	}
	return roles
}
