package domain

// Identity is the authenticated principal behind a request. The zero value
// is Anonymous: it owns nothing and holds no privileges.
type Identity struct {
	UserID int64
	Role   Role
}

// Anonymous is the identity of a request with no session binding.
var Anonymous = Identity{}

// IsAnonymous reports whether no user is bound to this identity.
func (i Identity) IsAnonymous() bool {
	return i.UserID == 0
}

// CanEdit reports whether this identity may modify the post. Ownership is
// the sole criterion; administrators get no override here.
func (i Identity) CanEdit(post *Post) bool {
	return !i.IsAnonymous() && i.UserID == post.AuthorID
}

// CanDelete reports whether this identity may delete the post.
func (i Identity) CanDelete(post *Post) bool {
	return i.CanEdit(post)
}

// IsAdministrator reports whether this identity holds the administrator role.
func (i Identity) IsAdministrator() bool {
	return !i.IsAnonymous() && i.Role == RoleAdministrator
}
