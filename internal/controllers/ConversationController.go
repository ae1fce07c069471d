package controllers

import (
	"artfolio/internal/models"
	"artfolio/internal/providers"
	"artfolio/internal/services"
	"net/http"
)

type ConversationController struct {
	logger        providers.Logger
	conversations services.ConversationServiceInterface
}

func NewConversationController(logger providers.Logger, conversations services.ConversationServiceInterface) *ConversationController {
	return &ConversationController{
		logger:        logger,
		conversations: conversations,
	}
}

func (cc *ConversationController) Threads(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, cc.conversations.Threads())
}

func (cc *ConversationController) Thread(w http.ResponseWriter, r *http.Request) {
	cp := queryID(r, "counterparty")
	th, ok := cc.conversations.GetThreadByCounterparty(cp)
	if !ok {
		writeError(w, r, cc.logger, services.ErrThreadNotFound)
		return
	}
	writeJSON(w, http.StatusOK, th)
}

func (cc *ConversationController) Send(w http.ResponseWriter, r *http.Request) {
	var draft services.Draft
	if !decodeBody(w, r, &draft) {
		return
	}
	cc.respondWithThread(w, r, cc.conversations.SendMessage(r.Context(), queryID(r, "counterparty"), draft))
}

func (cc *ConversationController) Share(w http.ResponseWriter, r *http.Request) {
	var artwork models.Artwork
	if !decodeBody(w, r, &artwork) {
		return
	}
	cc.respondWithThread(w, r, cc.conversations.ShareArtwork(r.Context(), queryID(r, "counterparty"), artwork))
}

func (cc *ConversationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := cc.conversations.MarkThreadRead(r.Context(), queryID(r, "id")); err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (cc *ConversationController) Dedupe(w http.ResponseWriter, r *http.Request) {
	cc.conversations.Deduplicate(r.Context())
	writeJSON(w, http.StatusOK, cc.conversations.Threads())
}

func (cc *ConversationController) Reset(w http.ResponseWriter, r *http.Request) {
	cc.conversations.ResetAll(r.Context())
	writeJSON(w, http.StatusOK, cc.conversations.Threads())
}

func (cc *ConversationController) respondWithThread(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	th, _ := cc.conversations.GetThreadByCounterparty(queryID(r, "counterparty"))
	writeJSON(w, http.StatusCreated, th)
}
