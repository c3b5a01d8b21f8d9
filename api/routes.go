package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/workspace-server/internal/handlers/v1/account"
	"github.com/carson-networks/workspace-server/internal/handlers/v1/recurring"
	"github.com/carson-networks/workspace-server/internal/handlers/v1/status"
	"github.com/carson-networks/workspace-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/workspace-server/internal/handlers/v1/workspace"
	"github.com/carson-networks/workspace-server/internal/logging"
	"github.com/carson-networks/workspace-server/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

// requestLogData injects a fresh LogData into every request context and emits
// an access log line when the request completes. Handlers add their own
// fields and timings to it along the way.
func requestLogData(log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		logData := logging.NewLogData(log)
		req = req.WithContext(logging.WithLogData(req.Context(), logData))

		logData.AddData("method", req.Method)
		logData.AddData("path", req.URL.Path)

		endTimer := logData.AddTiming("durationMs")
		next.ServeHTTP(w, req)
		endTimer()

		logData.Log().Info("Api.Request.Complete")
	})
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("Workspace Server", "1.0.0"))

	workspace.NewCreateWorkspaceHandler(r.Service.Workspace).Register(humaAPI)

	account.NewCreateAccountHandler(r.Service.Account).Register(humaAPI)
	account.NewListAccountsHandler(r.Service.Account).Register(humaAPI)

	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)

	recurring.NewCreateRuleHandler(r.Service.Rule).Register(humaAPI)
	recurring.NewGetRuleHandler(r.Service.Rule).Register(humaAPI)
	recurring.NewListRulesHandler(r.Service.Rule).Register(humaAPI)
	recurring.NewUpdateRuleHandler(r.Service.Rule).Register(humaAPI)
	recurring.NewDeleteRuleHandler(r.Service.Rule).Register(humaAPI)
	recurring.NewSkipNextHandler(r.Service.Rule).Register(humaAPI)
	recurring.NewGenerateHandler(r.Service.Recurrence).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           requestLogData(r.Logger, mux),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
