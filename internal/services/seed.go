package services

import (
	"artfolio/internal/models"
	"time"
)

func seedDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// seedThreads is the starting inbox of a fresh install and of ResetAll.
func seedThreads() []models.MessageThread {
	return []models.MessageThread{
		{
			ID: "1",
			Artist: models.User{
				ID:          "2",
				Username:    "elena.art",
				DisplayName: "Elena Rodriguez",
				Avatar:      "https://i.pravatar.cc/150?img=5",
				Bio:         "Abstract painter based in Barcelona",
				ArtStyles:   []string{"Abstract", "Contemporary"},
			},
			Messages: []models.Message{
				{
					ID:         "m1",
					SenderID:   "2",
					ReceiverID: AnonymousUserID,
					Content:    "Hi! I loved your latest piece. Would you be open to a collaboration?",
					Timestamp:  seedDate("2024-03-14T09:30:00Z"),
				},
			},
			LastMessage: "Hi! I loved your latest piece. Would you be open to a collaboration?",
			Unread:      true,
			Date:        seedDate("2024-03-14T09:30:00Z"),
		},
		{
			ID: "2",
			Artist: models.User{
				ID:          "3",
				Username:    "marcus.sculpts",
				DisplayName: "Marcus Chen",
				Avatar:      "https://i.pravatar.cc/150?img=12",
				Bio:         "Sculptor working with reclaimed materials",
				ArtStyles:   []string{"Sculpture"},
			},
			Messages: []models.Message{
				{
					ID:         "m2",
					SenderID:   "3",
					ReceiverID: AnonymousUserID,
					Content:    "Thanks for the feedback on my exhibition.",
					Timestamp:  seedDate("2024-03-12T16:05:00Z"),
					IsRead:     true,
				},
				{
					ID:         "m3",
					SenderID:   AnonymousUserID,
					ReceiverID: "3",
					Content:    "It was a pleasure, the installation was stunning.",
					Timestamp:  seedDate("2024-03-12T17:20:00Z"),
					IsRead:     true,
				},
			},
			LastMessage: "It was a pleasure, the installation was stunning.",
			Unread:      false,
			Date:        seedDate("2024-03-12T17:20:00Z"),
		},
		{
			ID: "3",
			Artist: models.User{
				ID:          "4",
				Username:    "sofia.ink",
				DisplayName: "Sofia Laurent",
				Avatar:      "https://i.pravatar.cc/150?img=9",
				Bio:         "Illustrator and printmaker",
				ArtStyles:   []string{"Illustration", "Printmaking"},
			},
			Messages: []models.Message{
				{
					ID:         "m4",
					SenderID:   "4",
					ReceiverID: AnonymousUserID,
					Content:    "Is the charcoal study still available?",
					Timestamp:  seedDate("2024-03-10T11:45:00Z"),
					IsRead:     true,
				},
			},
			LastMessage: "Is the charcoal study still available?",
			Unread:      false,
			Date:        seedDate("2024-03-10T11:45:00Z"),
		},
	}
}
