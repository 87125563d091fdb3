package routes

import (
	"nrxpay/controllers/admin"
	"nrxpay/controllers/auth"
	"nrxpay/controllers/user"
	"nrxpay/metrics"
	"nrxpay/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func Setup(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	app.Post("/auth/register", auth.Register)
	app.Post("/auth/login", auth.Login)

	authroutes := app.Group("/auth", middlewares.UserAuth)
	authroutes.Get("/me", auth.Me)
	authroutes.Post("/pin", auth.SetPin)
	authroutes.Post("/pin/verify", auth.VerifyPin)

	userroutes := app.Group("/user", middlewares.UserAuth)
	userroutes.Get("/balance", user.GetBalance)
	userroutes.Get("/balance/entries", user.ListEntries)

	userroutes.Post("/deposits", user.CreateDeposit)
	userroutes.Get("/deposits", user.ListDeposits)
	userroutes.Post("/withdrawals", user.CreateWithdrawal)
	userroutes.Get("/withdrawals", user.ListWithdrawals)
	userroutes.Post("/exchanges", user.CreateExchange)
	userroutes.Get("/exchanges", user.ListExchanges)

	userroutes.Post("/bank-accounts", user.CreateBankAccount)
	userroutes.Get("/bank-accounts", user.ListBankAccounts)
	userroutes.Delete("/bank-accounts/:id", user.DeactivateBankAccount)
	userroutes.Post("/applications", user.CreateApplication)
	userroutes.Get("/applications", user.ListApplications)

	userroutes.Get("/tasks", user.ListTasks)
	userroutes.Post("/tasks/:id/complete", user.CompleteTask)
	userroutes.Post("/tasks/:id/claim", user.ClaimBonus)

	userroutes.Post("/games/spin-wheel", user.PlaySpinWheel)
	userroutes.Post("/games/coin-flip", user.PlayCoinFlip)
	userroutes.Post("/games/lucky-draw", user.PlayLuckyDraw)
	userroutes.Get("/games/rounds", user.ListGameRounds)

	userroutes.Get("/rates/:family", user.GetRate)
	userroutes.Get("/rankings/:horizon", user.GetLeaderboard)

	adminroutes := app.Group("/admin", middlewares.AdminAuth)
	adminroutes.Get("/deposits", admin.ListDeposits)
	adminroutes.Post("/deposits/:id/approve", admin.ApproveDeposit)
	adminroutes.Post("/deposits/:id/reject", admin.RejectDeposit)

	adminroutes.Get("/withdrawals", admin.ListWithdrawals)
	adminroutes.Post("/withdrawals/:id/approve", admin.ApproveWithdrawal)
	adminroutes.Post("/withdrawals/:id/reject", admin.RejectWithdrawal)
	adminroutes.Post("/withdrawals/:id/suspend", admin.SuspendWithdrawal)
	adminroutes.Post("/withdrawals/:id/resume", admin.ResumeWithdrawal)

	adminroutes.Get("/exchanges", admin.ListExchanges)
	adminroutes.Post("/exchanges/:id/approve", admin.ApproveExchange)
	adminroutes.Post("/exchanges/:id/reject", admin.RejectExchange)

	adminroutes.Get("/applications", admin.ListApplications)
	adminroutes.Post("/applications/:id/approve", admin.ApproveApplication)
	adminroutes.Post("/applications/:id/reject", admin.RejectApplication)

	adminroutes.Post("/rates", admin.CreateRate)
	adminroutes.Get("/rates/:family", admin.ListRates)
	adminroutes.Post("/rates/:family/:id/activate", admin.ActivateRate)

	adminroutes.Post("/adjustments", admin.CreateAdjustment)

	adminroutes.Post("/tasks", admin.CreateTask)
	adminroutes.Delete("/tasks/:id", admin.DeactivateTask)
	adminroutes.Post("/tasks/:id/bonus", admin.ToggleUserBonus)

	adminroutes.Post("/rankings/:horizon/score", admin.SetRankScore)
	adminroutes.Post("/rankings/:horizon/recalculate", admin.RecalculateRankings)
}
