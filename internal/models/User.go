package models

import "time"

// User is a profile record. FollowersCount and FollowingCount are display
// counters only; the social graph lists are authoritative.
type User struct {
	ID             ID        `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	Avatar         string    `json:"avatar"`
	Bio            string    `json:"bio"`
	ArtStyles      []string  `json:"artStyles"`
	Skills         []string  `json:"skills"`
	FollowersCount int       `json:"followersCount"`
	FollowingCount int       `json:"followingCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.ArtStyles = append([]string(nil), u.ArtStyles...)
	c.Skills = append([]string(nil), u.Skills...)
	return &c
}

type Credential struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	UserID       ID     `json:"userId"`
}
