package handlers

import (
	"finch/internal/middleware"
	"finch/internal/models"
	"finch/internal/repositories"
	"finch/internal/services/account"
	"finch/internal/services/auth"
	"finch/internal/services/bill"
	"finch/internal/services/card"
	"finch/internal/services/loan"
	"finch/internal/services/transfer"
	"finch/internal/services/upi"
	"finch/internal/services/user"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires repositories, services and handlers onto the app.
func SetupRoutes(app *fiber.App) {
	// Repositories
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	accountRepo := repositories.NewAccountRepository(repositories.DB, repositories.CacheService)
	cardRepo := repositories.NewCardRepository(repositories.DB)
	loanRepo := repositories.NewLoanRepository(repositories.DB)
	billRepo := repositories.NewBillRepository(repositories.DB)
	txRepo := repositories.NewTransactionRepository(repositories.DB)
	requestRepo := repositories.NewPaymentRequestRepository(repositories.DB)

	// Services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo, accountRepo)
	accountService := account.NewService(accountRepo, userRepo, repositories.CacheService)
	transferService := transfer.NewService(accountRepo)
	cardService := card.NewService(cardRepo, accountRepo)
	loanService := loan.NewService(loan.PolicyFromEnv(), loanRepo, accountRepo)
	billService := bill.NewService(billRepo, accountRepo, cardService)
	upiService := upi.NewService(requestRepo, userRepo)

	gateway := transfer.NewGateway(transferService, cardService, upiService)

	// Handlers
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	accountHandler := NewAccountHandler(accountService)
	transferHandler := NewTransferHandler(accountService, gateway)
	cardHandler := NewCardHandler(cardService)
	loanHandler := NewLoanHandler(loanService)
	billHandler := NewBillHandler(billService)
	upiHandler := NewUPIHandler(upiService)
	txHandler := NewTransactionHandler(accountService, txRepo)
	adminHandler := NewAdminHandler(userRepo, accountService, loanService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Health check at the root
	app.Get("/health", HealthCheck)

	// Public routes
	api := app.Group("/api")
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Post("/loans/quote", loanHandler.GetQuote)

	// User routes with authentication
	authenticated := api.Group("/", authMiddleware.Handler)
	authenticated.Post("/logout", authHandler.LogoutUser)
	authenticated.Post("/change-password", middleware.HasPermission(models.PermissionChangePassword), authHandler.ChangePassword)
	authenticated.Get("/profile", userHandler.GetProfile)

	// Account routes
	acct := authenticated.Group("/account")
	acct.Get("/me", middleware.HasPermission(models.PermissionAccountRead), accountHandler.GetMyAccount)
	acct.Get("/verify/:identifier", middleware.HasPermission(models.PermissionAccountRead), accountHandler.VerifyRecipient)
	acct.Post("/transfer", middleware.HasPermission(models.PermissionTransferWrite), transferHandler.SendTransfer)

	// Card routes
	cards := authenticated.Group("/cards")
	cards.Post("/", middleware.HasPermission(models.PermissionCardWrite), cardHandler.LinkCard)
	cards.Get("/", middleware.HasPermission(models.PermissionCardRead), cardHandler.GetUserCards)
	cards.Delete("/:id", middleware.HasPermission(models.PermissionCardWrite), cardHandler.DeleteCard)
	authenticated.Post("/card-payment/send", middleware.HasPermission(models.PermissionTransferWrite), transferHandler.SendCardPayment)

	// Loan routes
	loans := authenticated.Group("/loans")
	loans.Post("/apply", middleware.HasPermission(models.PermissionLoanWrite), loanHandler.ApplyForLoan)
	loans.Get("/my", middleware.HasPermission(models.PermissionLoanRead), loanHandler.GetMyLoans)

	// Bill routes
	bills := authenticated.Group("/bills")
	bills.Get("/", middleware.HasPermission(models.PermissionBillRead), billHandler.GetUserBills)
	bills.Post("/pay/card", middleware.HasPermission(models.PermissionBillWrite), billHandler.PayBillWithCard)
	bills.Post("/pay/:id", middleware.HasPermission(models.PermissionBillWrite), billHandler.PayBill)

	// UPI collect requests
	requests := authenticated.Group("/payment-requests")
	requests.Post("/", middleware.HasPermission(models.PermissionTransferWrite), upiHandler.CreatePaymentRequest)
	requests.Get("/", middleware.HasPermission(models.PermissionTransferWrite), upiHandler.GetUserRequests)
	requests.Delete("/:code", middleware.HasPermission(models.PermissionTransferWrite), upiHandler.RevokeRequest)

	// Transaction history
	authenticated.Get("/transactions", middleware.HasPermission(models.PermissionAccountRead), txHandler.GetUserTransactions)
	authenticated.Get("/transactions/:reference", middleware.HasPermission(models.PermissionAccountRead), txHandler.GetTransactionByReference)

	// Admin routes (require AdminAuthMiddleware)
	admin := api.Group("/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)
	admin.Get("/users", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetUsersPaginated)
	admin.Post("/accounts/:id/freeze", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.FreezeAccount)
	admin.Post("/accounts/:id/unfreeze", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.UnfreezeAccount)
	admin.Get("/loans", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetLoansPaginated)
	admin.Post("/loans/:id/approve", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.ApproveLoan)
	admin.Post("/loans/:id/reject", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.RejectLoan)
}
