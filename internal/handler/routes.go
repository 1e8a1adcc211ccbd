package handler

import (
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-gonic/gin"

	"github.com/thierryazur06/site-api/internal/middleware"
)

// Routes wires every handler onto a gin engine.
type Routes struct {
	Auth      *AuthHandler
	Public    *PublicHandler
	Forms     *FormHandler
	Accounts  *AccountHandler
	Inquiries *InquiryHandler
	Admin     *AdminContentHandler

	Gate    *middleware.AuthMiddleware
	Limiter middleware.Limiter
	// PublicLimit guards the code-gated forms, AuthLimit the login flow.
	PublicLimit middleware.RateLimitConfig
	AuthLimit   middleware.RateLimitConfig
	// CacheTTL caches public reads when positive.
	CacheTTL time.Duration
}

// Register mounts the API under /api. Engine-wide middleware must be added
// before it is called.
func (rt *Routes) Register(router *gin.Engine) {
	limiter := rt.Limiter
	if limiter == nil {
		limiter = middleware.NoopLimiter{}
	}
	publicLimit := limiter.Limit(rt.PublicLimit)
	authLimit := limiter.Limit(rt.AuthLimit)

	// The gate sits on the engine so it also covers unmatched admin paths.
	router.Use(rt.Gate.RequireAuthUnder("/api/admin"))

	api := router.Group("/api")

	data := api.Group("/data")
	if rt.CacheTTL > 0 {
		data.Use(cache.CacheByRequestURI(persist.NewMemoryStore(time.Minute), rt.CacheTTL))
	}
	{
		// GET /api/data/about		-> About page with inlined image
		data.GET("/about", rt.Public.GetAbout)
		// GET /api/data/metadata	-> Contact details and hero/zones images
		data.GET("/metadata", rt.Public.GetMetadata)
		data.GET("/about-values", rt.Public.GetAboutValues)
		data.GET("/cities", rt.Public.GetCities)
		// GET /api/data/reviews	-> Approved reviews only
		data.GET("/reviews", rt.Public.GetReviews)
	}

	// POST /api/send-code	-> Mails a confirmation code to a visitor
	api.POST("/send-code", publicLimit, rt.Forms.SendCode)
	// POST /api/contact	-> Code gated contact form
	api.POST("/contact", publicLimit, rt.Forms.SubmitContact)
	// POST /api/reviews	-> Code gated review submission
	api.POST("/reviews", publicLimit, rt.Forms.SubmitReview)

	auth := api.Group("/auth", authLimit)
	{
		auth.POST("/login", rt.Auth.Login)
		auth.POST("/verify", rt.Auth.Verify)
		auth.POST("/request-reset-password", rt.Auth.RequestResetPassword)
		auth.POST("/reset-password", rt.Auth.ResetPassword)
	}

	admin := api.Group("/admin")
	{
		admin.GET("/me", rt.Accounts.Me)
		admin.GET("/stats", rt.Inquiries.Stats)
		admin.GET("/activities", rt.Inquiries.Activities)

		admin.GET("/contacts", rt.Inquiries.ListContacts)
		admin.GET("/contacts/export", rt.Inquiries.ExportContacts)

		// GET /api/admin/devis?replied=true	-> Quote requests, optionally filtered
		admin.GET("/devis", rt.Inquiries.ListDevis)
		admin.GET("/devis/export", rt.Inquiries.ExportDevis)
		admin.PATCH("/devis/:id", middleware.ExtractUintParam("id", "devisID"), rt.Inquiries.SetDevisReplied)

		admin.POST("/cities", rt.Admin.CreateCity)
		admin.PUT("/cities/:id", middleware.ExtractUintParam("id", "cityID"), rt.Admin.UpdateCity)
		admin.DELETE("/cities/:id", middleware.ExtractUintParam("id", "cityID"), rt.Admin.DeleteCity)

		admin.GET("/reviews", rt.Admin.ListReviews)
		admin.PUT("/reviews/:id", middleware.ExtractUintParam("id", "reviewID"), rt.Admin.SetReviewApproved)

		admin.GET("/users", rt.Accounts.ListUsers)
		admin.POST("/users", rt.Accounts.CreateUser)
		admin.DELETE("/users/:id", middleware.ExtractUintParam("id", "targetID"), rt.Accounts.DeleteUser)
		admin.POST("/users/request-password-change-code", rt.Accounts.RequestPasswordChangeCode)
		admin.PATCH("/users/change-password", rt.Accounts.ChangePassword)

		admin.GET("/data/about", rt.Admin.GetAbout)
		admin.PUT("/data/about", rt.Admin.UpdateAbout)
		admin.GET("/data/metadata", rt.Admin.GetMetadata)
		admin.PUT("/data/metadata", rt.Admin.UpdateMetadata)
		admin.GET("/data/about-values", rt.Admin.ListAboutValues)
		admin.POST("/data/about-values", rt.Admin.CreateAboutValue)
		admin.PUT("/data/about-values", rt.Admin.UpdateAboutValue)
		admin.DELETE("/data/about-values", rt.Admin.DeleteAboutValue)
	}
}
