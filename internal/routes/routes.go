package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/semijoias-crm/internal/bootstrap"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/admin"
	"github.com/BruksfildServices01/semijoias-crm/internal/handlers"
	"github.com/BruksfildServices01/semijoias-crm/internal/middleware"
	ucAdmin "github.com/BruksfildServices01/semijoias-crm/internal/usecase/admin"
	ucAutomation "github.com/BruksfildServices01/semijoias-crm/internal/usecase/automation"
	ucBilling "github.com/BruksfildServices01/semijoias-crm/internal/usecase/billing"
	ucCampaign "github.com/BruksfildServices01/semijoias-crm/internal/usecase/campaign"
	ucCart "github.com/BruksfildServices01/semijoias-crm/internal/usecase/cart"
	ucCatalog "github.com/BruksfildServices01/semijoias-crm/internal/usecase/catalog"
	ucClient "github.com/BruksfildServices01/semijoias-crm/internal/usecase/client"
	ucDashboard "github.com/BruksfildServices01/semijoias-crm/internal/usecase/dashboard"
)

func RegisterRoutes(r *gin.Engine, in *bootstrap.Infra) {
	cfg := in.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// 🧠 USE CASES (CLIENTES)
	// ======================================================
	createClientUC := ucClient.NewCreateClient(in.Clients, in.Audit, in.Clock)
	listClientsUC := ucClient.NewListClients(in.Clients)
	getClientUC := ucClient.NewGetClient(in.Clients)
	updateClientUC := ucClient.NewUpdateClient(in.Clients, in.Audit)
	deleteClientUC := ucClient.NewDeleteClient(in.Clients, in.Registry, in.Audit)
	segmentsUC := ucClient.NewListSegments(in.Clients, in.Clock, cfg.InactiveThresholdMonths)
	importClientsUC := ucClient.NewImportClients(createClientUC, in.Audit)
	exportClientsUC := ucClient.NewExportClients(in.Clients)

	// ======================================================
	// 🧠 USE CASES (CAMPANHAS / COBRANÇAS)
	// ======================================================
	sendCampaignUC := ucCampaign.NewSendCampaign(
		in.Clients,
		in.Registry,
		in.Notifier,
		in.Audit,
		cfg.CampaignConcurrency,
	)

	automationsUC := ucAutomation.NewAutomations(
		in.Clients,
		sendCampaignUC,
		in.Templates,
		in.Audit,
		in.Clock,
		cfg.InactiveThresholdMonths,
	)

	billingSvc := ucBilling.NewService(
		in.Billing,
		in.Clients,
		in.Notifier,
		in.Templates,
		in.Audit,
		in.Clock,
	)

	// ======================================================
	// 🧠 USE CASES (CATÁLOGO / LOJA)
	// ======================================================
	catalogSvc := ucCatalog.NewService(in.Products, in.Audit)
	uploadImageUC := ucCatalog.NewUploadImage(in.Products, in.Images, in.Audit)
	cartSvc := ucCart.NewService(in.Carts, in.Products, in.Checkout)

	// ======================================================
	// 🧠 USE CASES (ADMIN)
	// ======================================================
	loginUC := ucAdmin.NewLogin(in.Admins, cfg.JWTSecret, in.Clock)
	usersUC := ucAdmin.NewUsers(in.Admins, in.Audit, nil)
	summaryUC := ucDashboard.NewGetSummary(in.Clients, in.Products, in.Clock, cfg.InactiveThresholdMonths)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(loginUC, in.Admins)
	adminUserHandler := handlers.NewAdminUserHandler(usersUC)

	clientHandler := handlers.NewClientHandler(
		listClientsUC,
		getClientUC,
		createClientUC,
		updateClientUC,
		deleteClientUC,
		segmentsUC,
		importClientsUC,
		exportClientsUC,
	)

	tagHandler := handlers.NewTagHandler(in.Tags)
	campaignHandler := handlers.NewCampaignHandler(sendCampaignUC, automationsUC)
	billingHandler := handlers.NewBillingHandler(billingSvc)
	productHandler := handlers.NewProductHandler(catalogSvc, uploadImageUC)
	storeHandler := handlers.NewStoreHandler(catalogSvc, cartSvc)
	dashboardHandler := handlers.NewDashboardHandler(summaryUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(in.AuditLog)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🛍️ LOJA PÚBLICA
		// ------------------------------
		store := api.Group("/store")
		{
			store.GET("/products", storeHandler.Products)
			store.GET("/products/:id", storeHandler.Product)
			store.GET("/categories", storeHandler.Categories)

			store.POST("/carts", storeHandler.CreateCart)
			store.GET("/carts/:id", storeHandler.GetCart)
			store.DELETE("/carts/:id", storeHandler.ClearCart)
			store.POST("/carts/:id/items", storeHandler.AddItem)
			store.PUT("/carts/:id/items/:productId", storeHandler.UpdateItem)
			store.DELETE("/carts/:id/items/:productId", storeHandler.RemoveItem)
			store.POST("/carts/:id/checkout", storeHandler.Checkout)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			manager := middleware.RequireRole(admin.RoleManager)
			adminOnly := middleware.RequireRole(admin.RoleAdmin)

			secured.GET("/me", authHandler.Me)
			secured.GET("/dashboard", dashboardHandler.Get)

			// clientes
			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/segments", clientHandler.Segments)
			secured.GET("/clients/export", clientHandler.Export)
			secured.POST("/clients/import", manager, clientHandler.Import)
			secured.POST("/clients", manager, clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", manager, clientHandler.Update)
			secured.DELETE("/clients/:id", manager, clientHandler.Delete)

			// etiquetas
			secured.GET("/tags", tagHandler.List)
			secured.GET("/tags/palette", tagHandler.Palette)
			secured.POST("/tags", manager, tagHandler.Create)
			secured.GET("/clients/:id/tags", tagHandler.ClientTags)
			secured.POST("/clients/:id/tags", manager, tagHandler.AddToClient)
			secured.DELETE("/clients/:id/tags/:tagId", manager, tagHandler.RemoveFromClient)

			// campanhas e automações
			secured.GET("/campaigns/candidates", campaignHandler.Candidates)
			secured.POST("/campaigns", manager, campaignHandler.Send)
			secured.GET("/automations/templates", campaignHandler.Templates)
			secured.POST("/automations/:kind", manager, campaignHandler.RunAutomation)

			// cobranças
			secured.GET("/billing", billingHandler.List)
			secured.POST("/billing", manager, billingHandler.Create)
			secured.POST("/billing/send-due", manager, billingHandler.SendDue)
			secured.DELETE("/billing/:id", manager, billingHandler.Delete)
			secured.POST("/billing/:id/send", manager, billingHandler.SendNow)

			// catálogo
			secured.GET("/products", productHandler.List)
			secured.GET("/products/low-stock", productHandler.LowStock)
			secured.GET("/products/export", productHandler.Export)
			secured.POST("/products/import", manager, productHandler.Import)
			secured.POST("/products", manager, productHandler.Create)
			secured.GET("/products/:id", productHandler.Get)
			secured.PUT("/products/:id", manager, productHandler.Update)
			secured.DELETE("/products/:id", manager, productHandler.Delete)
			secured.POST("/products/:id/images", manager, productHandler.UploadImage)
			secured.GET("/categories", productHandler.Categories)
			secured.POST("/categories", manager, productHandler.CreateCategory)

			// administração
			secured.GET("/admin/users", adminOnly, adminUserHandler.List)
			secured.POST("/admin/users", adminOnly, adminUserHandler.Create)
			secured.PUT("/admin/users/:id", adminOnly, adminUserHandler.Update)
			secured.DELETE("/admin/users/:id", adminOnly, adminUserHandler.Delete)
			secured.GET("/audit-logs", adminOnly, auditLogsHandler.List)
		}
	}
}
