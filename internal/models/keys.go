package models

const (
	KeySessionUser = "current-session-user"
	KeyCredentials = "registered-credentials"
	KeyProfiles    = "registered-profiles"
	KeyArtworks    = "artworks"
	KeyThreads     = "messages"
)

func FollowingKey(userID ID) string {
	return "following_" + string(userID)
}

func FollowersKey(userID ID) string {
	return "followers_" + string(userID)
}

func LikedKey(userID ID) string {
	return "liked-artworks_" + string(userID)
}

func SavedKey(userID ID) string {
	return "saved-artworks_" + string(userID)
}
