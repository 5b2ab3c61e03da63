package router

import (
	"Orbit_Community/internal/config"
	"Orbit_Community/internal/handler"
	"Orbit_Community/internal/middleware"
	"Orbit_Community/internal/pkg"
	"Orbit_Community/internal/repository/mysql"
	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	tokens := pkg.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)

	// 仓储
	users := mysql.NewUserRepository(mysql.DB)
	communities := mysql.NewCommunityRepository(mysql.DB)
	communityMembers := mysql.NewCommunityMemberRepository(mysql.DB)
	groups := mysql.NewGroupRepository(mysql.DB)
	groupMembers := mysql.NewGroupMemberRepository(mysql.DB)
	events := mysql.NewEventRepository(mysql.DB)
	attendance := mysql.NewAttendanceRepository(mysql.DB)

	// 角色判定统一走 Permission
	perms := service.NewPermission(communityMembers, groupMembers, events)

	activation := service.NewActivationService(pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	user := handler.NewUserHandler(service.NewUserService(users, tokens, activation))
	community := handler.NewCommunityHandler(service.NewCommunityService(users, communities, communityMembers, perms))
	group := handler.NewGroupHandler(service.NewGroupService(users, groups, groupMembers, communities, communityMembers, perms))
	event := handler.NewEventHandler(service.NewEventService(users, events, attendance, groups, communities, groupMembers, perms))

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/activate", user.Activate)
		userGroup.POST("/login", user.Login)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware(tokens))
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
		authGroup.GET("/me", user.Me)
	}

	// 社区相关接口
	communityGroup := r.Group("/api/community")
	communityGroup.Use(middleware.AuthMiddleware(tokens))
	{
		communityGroup.POST("/create", community.Create)
		communityGroup.GET("/list", community.List)
		communityGroup.GET("/search", community.Search)
		communityGroup.GET("/mine", community.Mine)
		communityGroup.GET("/created", community.Created)
		communityGroup.GET("/:id", community.Get)
		communityGroup.PUT("/:id", community.Update)
		communityGroup.DELETE("/:id", community.Delete)
		communityGroup.POST("/:id/members", community.AddMember)
		communityGroup.GET("/:id/members", community.Members)
		communityGroup.GET("/:id/members/:userId", community.Membership)
		communityGroup.PUT("/:id/members/:userId/role", community.UpdateMemberRole)
		communityGroup.DELETE("/:id/members/:userId", community.RemoveMember)
	}

	// 小组相关接口
	groupGroup := r.Group("/api/group")
	groupGroup.Use(middleware.AuthMiddleware(tokens))
	{
		groupGroup.POST("/create", group.Create)
		groupGroup.GET("/mine", group.Mine)
		groupGroup.GET("/created", group.Created)
		groupGroup.GET("/by-community/:communityId", group.ListByCommunity)
		groupGroup.GET("/by-community/:communityId/search", group.Search)
		groupGroup.GET("/:id", group.Get)
		groupGroup.PUT("/:id", group.Update)
		groupGroup.DELETE("/:id", group.Delete)
		groupGroup.POST("/:id/members", group.AddMember)
		groupGroup.GET("/:id/members", group.Members)
		groupGroup.GET("/:id/members/:userId", group.Membership)
		groupGroup.PUT("/:id/members/:userId/role", group.UpdateMemberRole)
		groupGroup.DELETE("/:id/members/:userId", group.RemoveMember)
	}

	// 活动相关接口
	eventGroup := r.Group("/api/event")
	eventGroup.Use(middleware.AuthMiddleware(tokens))
	{
		eventGroup.POST("/create", event.Create)
		eventGroup.GET("/by-community/:communityId", event.ListByCommunity)
		eventGroup.GET("/by-group/:groupId", event.ListByGroup)
		eventGroup.GET("/:id", event.Get)
		eventGroup.PUT("/:id", event.Update)
		eventGroup.DELETE("/:id", event.Delete)
		eventGroup.PUT("/:id/attendance/toggle", event.ToggleAttendance)
		eventGroup.POST("/:id/attendance/mark", event.MarkAttendance)
		eventGroup.GET("/:id/attendance", event.Attendance)
		eventGroup.GET("/:id/attendance/stats", event.Stats)
	}

	return r
}
