package router

import (
	"ecclesia/authz"
	"ecclesia/config"
	"ecclesia/controllers"
	"ecclesia/middleware"
	"ecclesia/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Initialize wires all routes and middlewares.
// Composição dos guards por rota: AuthRequired -> Authorizer -> [FeatureGate]
// -> [RoleGate/PermissionGate] -> handler. O primeiro que negar aborta a
// cadeia; feature vem antes dos gates finos quando condiciona a rota inteira.
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	api := r.Group("/api")

	// Public (no auth)
	api.POST("/users", Logger(), controllers.CreateUser)
	api.POST("/login", Logger(), controllers.Login)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())

	// Validated routes (token + active user)
	validated := auth.Group("")
	validated.Use(Authorizer())

	validated.GET("/me", Logger(), controllers.Me)
	validated.PUT("/user", Logger(), controllers.UpdateCurrentUser)
	validated.GET("/me/entitlements", Logger(), controllers.GetMyEntitlements)

	// Catálogo de features e planos disponíveis
	validated.GET("/features", Logger(), controllers.GetFeatures)
	validated.GET("/plans", Logger(), controllers.GetPlans)
	validated.GET("/plans/:id", Logger(), controllers.GetPlanByID)

	// Assinaturas (user)
	validated.GET("/subscriptions", Logger(), controllers.GetMySubscriptions)
	validated.POST("/subscriptions/purchase", Logger(), controllers.PurchaseSubscription)
	validated.POST("/subscriptions/cancel", Logger(), controllers.CancelSubscription)

	// Onboarding: qualquer conta ativa pode fundar uma igreja (vira ADMINGERAL)
	validated.POST("/churches", Logger(), controllers.CreateChurch)

	// Plans CRUD (admin geral)
	plansAdmin := validated.Group("")
	plansAdmin.Use(RequireRole(models.MEMBER_ROLE_ADMINGERAL))
	plansAdmin.POST("/plans", Logger(), controllers.CreatePlan)
	plansAdmin.PUT("/plans/:id", Logger(), controllers.UpdatePlan)
	plansAdmin.DELETE("/plans/:id", Logger(), controllers.DeletePlan)

	// Administração da igreja (admins)
	admin := validated.Group("")
	admin.Use(RequireRole(models.MEMBER_ROLE_ADMINGERAL, models.MEMBER_ROLE_ADMINFILIAL))
	admin.GET("/churches/:id", Logger(), controllers.GetChurchByID)

	// Filiais: feature "branches" + admin; o handler consome max_branches
	// dos entitlements anexados pelo gate.
	branches := admin.Group("")
	branches.Use(RequireFeature("branches"))
	branches.POST("/branches", Logger(), controllers.CreateBranch)

	// Membros: feature "members" + admin; CreateMember consome max_members.
	members := admin.Group("")
	members.Use(RequireFeature("members"))
	members.GET("/members", Logger(), controllers.GetMembers)
	members.POST("/members", Logger(), controllers.CreateMember)
	members.PUT("/members/:id/role", Logger(), controllers.UpdateMemberRole)
	members.DELETE("/members/:id", Logger(), controllers.DeleteMember)

	// Grants de permissão (admin)
	admin.GET("/member-permissions/:id", Logger(), controllers.GetMemberPermissions)
	admin.POST("/member-permissions", Logger(), controllers.AddPermissionToMember)
	admin.DELETE("/member-permissions", Logger(), controllers.RemovePermissionFromMember)

	// Agenda: feature "events"; escrita exige permissão fina.
	events := validated.Group("")
	events.Use(RequireFeature("events"))
	events.GET("/events", Logger(), controllers.GetEvents)
	events.GET("/events/:id", Logger(), controllers.GetEventByID)
	events.POST("/events", Logger(), RequirePermissions(authz.PermManageEvents), controllers.CreateEvent)
	events.DELETE("/events/:id", Logger(), RequirePermissions(authz.PermManageEvents), controllers.DeleteEvent)

	// Dízimos e ofertas: feature "contributions"; lançamento exige permissão.
	contributions := validated.Group("")
	contributions.Use(RequireFeature("contributions"))
	contributions.GET("/contributions", Logger(), controllers.GetContributions)
	contributions.POST("/contributions", Logger(),
		RequirePermissions(authz.PermManageContributions), controllers.CreateContribution)

	// Finanças: feature "finances" + permissão manage_finances.
	finances := validated.Group("")
	finances.Use(RequireFeature("finances"), RequirePermissions(authz.PermManageFinances))
	finances.GET("/finances/dashboard/monthly", Logger(), controllers.GetFinanceMonthlySummary)

	logrus.Info("Routes initialized")
}
