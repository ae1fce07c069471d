package models

import "time"

type Message struct {
	ID            ID        `json:"id"`
	SenderID      ID        `json:"senderId"`
	ReceiverID    ID        `json:"receiverId"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
	IsRead        bool      `json:"isRead"`
	Subject       string    `json:"subject,omitempty"`
	SharedArtwork *Artwork  `json:"sharedArtwork,omitempty"`
}

// MessageThread is the whole conversation with one counterparty. Messages
// are append-only in call order; LastMessage, Unread and Date are derived
// from the most recent state-changing event.
type MessageThread struct {
	ID          ID        `json:"id"`
	Artist      User      `json:"artist"`
	Messages    []Message `json:"messages"`
	LastMessage string    `json:"lastMessage"`
	Unread      bool      `json:"unread"`
	Date        time.Time `json:"date"`
}

func (t *MessageThread) CounterpartyID() ID {
	return NormalizeID(string(t.Artist.ID))
}

func (t *MessageThread) Clone() *MessageThread {
	c := *t
	c.Artist = *t.Artist.Clone()
	c.Messages = make([]Message, len(t.Messages))
	for i, m := range t.Messages {
		c.Messages[i] = m
		c.Messages[i].SharedArtwork = m.SharedArtwork.Clone()
	}
	return &c
}
