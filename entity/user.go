package entity

import (
	"heckel.io/rtmtail/frame"
	"heckel.io/rtmtail/rtmerr"
)

// User is a member of the team
type User struct {
	ID       string
	Name     *string
	Deleted  *bool
	Color    *string
	RealName *string
	TZ       *string
	IsAdmin  *bool
	IsOwner  *bool
	IsBot    *bool
	Presence *string
	Profile  *Profile
}

// Profile holds the user's profile fields
type Profile struct {
	FirstName   *string
	LastName    *string
	RealName    *string
	DisplayName *string
	Email       *string
	Phone       *string
	Image48     *string
	Image192    *string
}

// DecodeUser decodes a user object
func DecodeUser(v frame.Value) (*User, error) {
	f := v.Fields()
	user := &User{
		ID:       f.String("id"),
		Name:     f.OptString("name"),
		Deleted:  f.OptBool("deleted"),
		Color:    f.OptString("color"),
		RealName: f.OptString("real_name"),
		TZ:       f.OptString("tz"),
		IsAdmin:  f.OptBool("is_admin"),
		IsOwner:  f.OptBool("is_owner"),
		IsBot:    f.OptBool("is_bot"),
		Presence: f.OptString("presence"),
	}
	if obj, ok := f.OptObject("profile"); ok {
		pf := obj.Fields()
		user.Profile = &Profile{
			FirstName:   pf.OptString("first_name"),
			LastName:    pf.OptString("last_name"),
			RealName:    pf.OptString("real_name"),
			DisplayName: pf.OptString("display_name"),
			Email:       pf.OptString("email"),
			Phone:       pf.OptString("phone"),
			Image48:     pf.OptString("image_48"),
			Image192:    pf.OptString("image_192"),
		}
		f.Fail(pf.Err())
	}
	if err := f.Err(); err != nil {
		return nil, rtmerr.FromJSONDecode(err)
	}
	return user, nil
}
