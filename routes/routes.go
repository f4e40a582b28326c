package routes

import (
	"time"

	"librarysystem/app"
	"librarysystem/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	bookCtl := controllers.NewBookController(s)
	borrowCtl := controllers.NewBorrowController(s)
	memberCtl := controllers.NewMemberController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.AppSess, s.Repo)
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// 会话（公开+受保护）
	// ------------------------------
	r.POST("/api/login", s.Login)

	authed := r.Group("/api", authMW, seenMW)
	{
		authed.POST("/logout", s.Logout)
		authed.GET("/whoami", s.Whoami)
	}

	// ------------------------------
	// 图书目录 + 借还
	// ------------------------------
	books := r.Group("/api/books", authMW, seenMW)
	{
		books.GET("", bookCtl.ListBooks) // ?title=&author=&status=&page=
		books.POST("", bookCtl.CreateBook)
		books.GET("/:id", bookCtl.GetBook)
		books.PUT("/:id", bookCtl.UpdateBook)
		books.DELETE("/:id", bookCtl.DeleteBook)

		books.POST("/:id/borrow", borrowCtl.Borrow)
		books.POST("/:id/return", borrowCtl.Return)
		books.GET("/:id/history", borrowCtl.History)
	}

	// ------------------------------
	// 会员管理
	// ------------------------------
	members := r.Group("/api/members", authMW, seenMW)
	{
		members.GET("", memberCtl.ListMembers)
		members.POST("", memberCtl.CreateMember)
		members.GET("/:id", memberCtl.GetMember)
		members.PUT("/:id", memberCtl.UpdateMember)
		members.DELETE("/:id", memberCtl.DeleteMember)
	}
}
