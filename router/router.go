package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-banking-core/docs"
	"go-banking-core/handler"
)

func NewRouter(
	customerHandler *handler.CustomerHandler,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
	feeHandler *handler.FeeHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler())

	mux.Handle("POST /api/v1/customers", handler.ErrorHandlingMiddleware(customerHandler.CreateCustomer))
	mux.Handle("GET /api/v1/customers", handler.ErrorHandlingMiddleware(customerHandler.ListCustomers))
	mux.Handle("GET /api/v1/customers/{id}", handler.ErrorHandlingMiddleware(customerHandler.GetCustomer))

	mux.Handle("POST /api/v1/accounts", handler.ErrorHandlingMiddleware(accountHandler.CreateAccount))
	mux.Handle("GET /api/v1/accounts", handler.ErrorHandlingMiddleware(accountHandler.ListAccountsByCustomer))
	mux.Handle("GET /api/v1/accounts/{id}", handler.ErrorHandlingMiddleware(accountHandler.GetAccount))
	mux.Handle("POST /api/v1/accounts/{id}/interest", handler.ErrorHandlingMiddleware(accountHandler.ApplyInterest))
	mux.Handle("POST /api/v1/accounts/{id}/overdraft", handler.ErrorHandlingMiddleware(accountHandler.ProcessOverdraft))

	mux.Handle("POST /api/v1/accounts/process", handler.ErrorHandlingMiddleware(transactionHandler.ProcessTransaction))
	mux.Handle("GET /api/v1/accounts/{id}/transactions", handler.ErrorHandlingMiddleware(transactionHandler.ListTransactionsForAccount))

	mux.Handle("POST /api/v1/accounts/{id}/fees", handler.ErrorHandlingMiddleware(feeHandler.AssessMonthlyFee))

	return mux
}
