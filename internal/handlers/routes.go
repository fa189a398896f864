package handlers

import "github.com/gin-gonic/gin"

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Users            *UserHandler
	Clubs            *ClubHandler
	Events           *EventHandler
	RSVPs            *RSVPHandler
	Attendances      *AttendanceHandler
	Achievements     *AchievementHandler
	ClubAchievements *ClubAchievementHandler
	UserAchievements *UserAchievementHandler
	Notifications    *NotificationHandler
	Awards           *AwardHandler
}

// RegisterRoutes mounts the API. Reads are public; mutations go through requireAuth.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, requireAuth gin.HandlerFunc) {
	users := api.Group("/users")
	{
		users.POST("", h.Users.Signup)
		users.POST("/auth", h.Users.Login)
		users.POST("/logout", h.Users.Logout)
		users.GET("/me", requireAuth, h.Users.GetCurrentUser)
		users.GET("", h.Users.ListUsers)
		users.GET("/count", h.Users.CountUsers)
		users.GET("/top", h.Users.TopUsers)
		users.GET("/exists", h.Users.UserExists)
		users.GET("/lookup", h.Users.LookupUser)
		users.GET("/:id", h.Users.GetUser)
		users.GET("/:id/rank", h.Users.GetUserRank)
		users.PUT("/:id", requireAuth, h.Users.UpdateUser)
		users.PUT("/:id/points", requireAuth, h.Users.UpdateUserPoints)
		users.DELETE("/:id", requireAuth, h.Users.DeleteUser)
		users.POST("/event/:eventid/award", requireAuth, h.Awards.AwardAttendeePoints)
	}

	clubs := api.Group("/clubs")
	{
		clubs.POST("", h.Clubs.Signup)
		clubs.POST("/auth", h.Clubs.Login)
		clubs.POST("/logout", h.Clubs.Logout)
		clubs.GET("/me", requireAuth, h.Clubs.GetCurrentClub)
		clubs.GET("", h.Clubs.ListClubs)
		clubs.GET("/count", h.Clubs.CountClubs)
		clubs.GET("/top", h.Clubs.TopClubs)
		clubs.GET("/exists", h.Clubs.ClubExists)
		clubs.GET("/lookup", h.Clubs.LookupClub)
		clubs.GET("/:id", h.Clubs.GetClub)
		clubs.GET("/:id/rank", h.Clubs.GetClubRank)
		clubs.PUT("/:id", requireAuth, h.Clubs.UpdateClub)
		clubs.PUT("/:id/points", requireAuth, h.Clubs.UpdateClubPoints)
		clubs.DELETE("/:id", requireAuth, h.Clubs.DeleteClub)
		clubs.POST("/event/:eventid/award", requireAuth, h.Awards.AwardClubPoints)
	}

	events := api.Group("/events")
	{
		events.POST("", requireAuth, h.Events.CreateEvent)
		events.GET("", h.Events.ListEvents)
		events.GET("/count", h.Events.CountEvents)
		events.GET("/exists", h.Events.EventExists)
		events.GET("/:id", h.Events.GetEvent)
		events.GET("/:id/awards", h.Awards.ListAwards)
		events.PUT("/:id", requireAuth, h.Events.UpdateEvent)
		events.PUT("/:id/date", requireAuth, h.Events.UpdateEventDate)
		events.DELETE("/:id", requireAuth, h.Events.DeleteEvent)
	}

	rsvps := api.Group("/rsvps")
	{
		rsvps.POST("", requireAuth, h.RSVPs.CreateRSVP)
		rsvps.GET("", h.RSVPs.ListRSVPs)
		rsvps.GET("/count", h.RSVPs.CountRSVPs)
		rsvps.GET("/exists", h.RSVPs.RSVPExists)
		rsvps.GET("/event/:eventid/users", h.RSVPs.ListEventUsers)
		rsvps.GET("/:id", h.RSVPs.GetRSVP)
		rsvps.PUT("/:id/status", requireAuth, h.RSVPs.UpdateRSVPStatus)
		rsvps.DELETE("/:id", requireAuth, h.RSVPs.DeleteRSVP)
		rsvps.DELETE("/event/:eventid", requireAuth, h.RSVPs.DeleteEventRSVPs)
		rsvps.DELETE("/user/:userid", requireAuth, h.RSVPs.DeleteUserRSVPs)
	}

	attends := api.Group("/attends")
	{
		attends.POST("", requireAuth, h.Attendances.CreateAttendance)
		attends.GET("", h.Attendances.ListAttendances)
		attends.GET("/count", h.Attendances.CountAttendances)
		attends.GET("/exists", h.Attendances.AttendanceExists)
		attends.GET("/event/:eventid/users", h.Attendances.ListEventUsers)
		attends.GET("/:id", h.Attendances.GetAttendance)
		attends.PUT("/:id/status", requireAuth, h.Attendances.UpdateAttendanceStatus)
		attends.DELETE("/:id", requireAuth, h.Attendances.DeleteAttendance)
		attends.DELETE("/event/:eventid", requireAuth, h.Attendances.DeleteEventAttendances)
		attends.DELETE("/user/:userid", requireAuth, h.Attendances.DeleteUserAttendances)
	}

	achs := api.Group("/achs")
	{
		achs.POST("", requireAuth, h.Achievements.CreateAchievement)
		achs.GET("", h.Achievements.ListAchievements)
		achs.GET("/count", h.Achievements.CountAchievements)
		achs.GET("/exists", h.Achievements.AchievementExists)
		achs.GET("/:id", h.Achievements.GetAchievement)
		achs.PUT("/:id", requireAuth, h.Achievements.UpdateAchievement)
		achs.PUT("/:id/points", requireAuth, h.Achievements.UpdateAchievementPoints)
		achs.DELETE("/:id", requireAuth, h.Achievements.DeleteAchievement)
	}

	clubachs := api.Group("/clubachs")
	{
		clubachs.POST("", requireAuth, h.ClubAchievements.CreateClubAchievement)
		clubachs.GET("", h.ClubAchievements.ListClubAchievements)
		clubachs.GET("/count", h.ClubAchievements.CountClubAchievements)
		clubachs.GET("/exists", h.ClubAchievements.ClubAchievementExists)
		clubachs.GET("/:id", h.ClubAchievements.GetClubAchievement)
		clubachs.DELETE("/:id", requireAuth, h.ClubAchievements.DeleteClubAchievement)
		clubachs.DELETE("/club/:clubid", requireAuth, h.ClubAchievements.DeleteByClub)
		clubachs.DELETE("/ach/:achid", requireAuth, h.ClubAchievements.DeleteByAchievement)
	}

	userachs := api.Group("/userachs")
	{
		userachs.POST("", requireAuth, h.UserAchievements.CreateUserAchievement)
		userachs.GET("", h.UserAchievements.ListUserAchievements)
		userachs.GET("/count", h.UserAchievements.CountUserAchievements)
		userachs.GET("/exists", h.UserAchievements.UserAchievementExists)
		userachs.GET("/:id", h.UserAchievements.GetUserAchievement)
		userachs.DELETE("/:id", requireAuth, h.UserAchievements.DeleteUserAchievement)
		userachs.DELETE("/user/:userid", requireAuth, h.UserAchievements.DeleteByUser)
		userachs.DELETE("/ach/:achid", requireAuth, h.UserAchievements.DeleteByAchievement)
	}

	notifs := api.Group("/notifs")
	notifs.Use(requireAuth)
	{
		notifs.POST("", h.Notifications.CreateNotification)
		notifs.GET("", h.Notifications.ListNotifications)
		notifs.GET("/count", h.Notifications.CountNotifications)
		notifs.GET("/exists", h.Notifications.NotificationExists)
		notifs.PUT("/read-all", h.Notifications.MarkAllRead)
		notifs.GET("/:id", h.Notifications.GetNotification)
		notifs.PUT("/:id/status", h.Notifications.UpdateNotificationStatus)
		notifs.DELETE("/:id", h.Notifications.DeleteNotification)
		notifs.DELETE("", h.Notifications.DeleteNotifications)
	}
}
