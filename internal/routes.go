package internal

import (
	"artfolio/internal/controllers"
	"artfolio/internal/providers"
	"net/http"
)

func InitRoutes(
	session *controllers.SessionController,
	conversations *controllers.ConversationController,
	social *controllers.SocialController,
	prefs *controllers.PreferenceController,
	artworks *controllers.ArtworkController,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/session/login", http.HandlerFunc(session.Login))
	routers.Post("/session/register", http.HandlerFunc(session.Register))
	routers.Post("/session/logout", http.HandlerFunc(session.Logout))
	routers.Get("/session", http.HandlerFunc(session.Current))

	routers.Get("/threads", http.HandlerFunc(conversations.Threads))
	routers.Get("/thread", http.HandlerFunc(conversations.Thread))
	routers.Post("/messages", http.HandlerFunc(conversations.Send))
	routers.Post("/share", http.HandlerFunc(conversations.Share))
	routers.Post("/thread/read", http.HandlerFunc(conversations.MarkRead))
	routers.Post("/threads/dedupe", http.HandlerFunc(conversations.Dedupe))
	routers.Post("/threads/reset", http.HandlerFunc(conversations.Reset))

	routers.Post("/follow", http.HandlerFunc(social.Follow))
	routers.Post("/unfollow", http.HandlerFunc(social.Unfollow))
	routers.Get("/following", http.HandlerFunc(social.Following))
	routers.Get("/followers", http.HandlerFunc(social.Followers))
	routers.Get("/followers/count", http.HandlerFunc(social.CountFollowers))
	routers.Get("/following/count", http.HandlerFunc(social.CountFollowing))

	routers.Post("/like", http.HandlerFunc(prefs.Like))
	routers.Post("/unlike", http.HandlerFunc(prefs.Unlike))
	routers.Post("/save", http.HandlerFunc(prefs.Save))
	routers.Post("/unsave", http.HandlerFunc(prefs.Unsave))
	routers.Get("/liked", http.HandlerFunc(prefs.Liked))
	routers.Get("/saved", http.HandlerFunc(prefs.Saved))

	routers.Get("/artworks", http.HandlerFunc(artworks.List))
	routers.Post("/artworks", http.HandlerFunc(artworks.Upload))
	routers.Get("/artwork", http.HandlerFunc(artworks.Get))
	return routers
}
