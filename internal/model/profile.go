package model

import "time"

// Profile describes a farmer or retailer. JSON names follow the profiles
// table of the authenticated backend so the same value can travel there.
type Profile struct {
	JoinedDate  time.Time `json:"joined_date,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	UID         string    `json:"id" validate:"required"`
	Name        string    `json:"name"`
	Division    string    `json:"division"`
	District    string    `json:"district"`
	SubDistrict string    `json:"sub_district"`
	Contact     string    `json:"contact"`
	About       string    `json:"about"`
	AvatarURL   string    `json:"avatar_url"`
	Role        Role      `json:"role" validate:"omitempty,oneof=farmer retailer"`
}

// ProfilePatch carries the fields of a partial profile update. The uid is
// not patchable.
type ProfilePatch struct {
	Name        *string
	Role        *Role
	Division    *string
	District    *string
	SubDistrict *string
	Contact     *string
	About       *string
	AvatarURL   *string
	Rating      *float64
}

// Apply merges the patch over profile and returns the result.
func (p ProfilePatch) Apply(profile Profile) Profile {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&profile.Name, p.Name)
	set(&profile.Division, p.Division)
	set(&profile.District, p.District)
	set(&profile.SubDistrict, p.SubDistrict)
	set(&profile.Contact, p.Contact)
	set(&profile.About, p.About)
	set(&profile.AvatarURL, p.AvatarURL)
	if p.Role != nil {
		profile.Role = *p.Role
	}
	if p.Rating != nil {
		rating := *p.Rating
		profile.Rating = &rating
	}
	return profile
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p == ProfilePatch{}
}
