package main

import (
	"os"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/cmd/verifier-api/docs"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/ledger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/logaudit"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/nearrpc"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/rpcpool"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/statusstore"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/verification"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/zkproof"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/appbuilder"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/rabbitmq"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/rest"
)

// @title           Citizens House Verification API
// @version         1.0
// @description     Verifies NEAR account ownership and zero-knowledge identity proofs, then records the result on the citizenship registry contract
// @host localhost:9000
// @BasePath /v1
func main() {

	var (
		handler    *verification.Handler
		service    *verification.Service
		logService *logaudit.Service
		logHandler *logaudit.Handler
	)

	if host := os.Getenv("PUBLIC_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	}

	appbuilder.New[ApiConfigJson, ApiConfig]().
		InitLogger(logger.GlobalLoggerConfig{
			Args: []logger.LoggerArg{{Key: "service", Value: "verifier-api"}},
		}).
		ResolveEnvironment().
		LoadConfig("config.json").
		WithOption(func(a *appbuilder.AppBuilder[ApiConfigJson, ApiConfig]) {
			a.Logger.WithLevel(a.Config.GetLoggerConfig().LogLevel)

			// ----- DATABASE + MIGRATIONS -----
			statusstore.ConnectToDatabase(a)
			statusstore.RunMigrations(true)
			if err := logaudit.AutoMigrate(statusstore.GetDatabaseConnection()); err != nil {
				a.Logger.Fatal(err, "Migrating the log audit table failed")
			}

			// ----- LOG AUDIT -----
			logService = logaudit.NewService(logaudit.NewRepository(statusstore.GetDatabaseConnection()))
			logHandler = logaudit.NewHandler(logService)
		}).

		// ----- RABBITMQ -----
		InitRabbitmqConnection().
		InitRabbitmqRegistries().
		WithOption(func(a *appbuilder.AppBuilder[ApiConfigJson, ApiConfig]) {
			// ----- RABBITMQ LOGGING SINK -----
			logPublisher := rabbitmq.GetPublisher("LogPublisher")
			logSink := rabbitmq.CreateRabbitmqLoggerSink(logPublisher, "verifier-api")
			logger.AddSinkToLoggerInstance(a.Logger, logSink)
		}).
		WithOption(func(a *appbuilder.AppBuilder[ApiConfigJson, ApiConfig]) {
			// ----- NEAR REGISTRY READS -----
			pool, err := rpcpool.New(a.Config.NearConf.RpcEndpoints, rpcpool.WithLogger(a.Logger))
			if err != nil {
				a.Logger.Fatal(err, "Cannot build the NEAR endpoint pool")
			}
			provider := nearrpc.NewProvider(pool)
			reader := ledger.NewReader(provider, a.Config.NearConf.ContractId)

			// ----- PROOF VERIFIER -----
			zkproof.Setup(a.Config.IdentityHubConf, a.Logger)
			verifier, err := zkproof.Default()
			if err != nil {
				a.Logger.Fatal(err, "Cannot build the proof verifier")
			}

			var proofVerifier verification.ProofVerifier = verifier
			if keyFiles := a.Config.IdentityHubConf.PrecheckKeyFiles; len(keyFiles) > 0 {
				locals, err := zkproof.LoadPrecheckVerifiers(keyFiles)
				if err != nil {
					a.Logger.Fatal(err, "Cannot load precheck verification keys")
				}
				proofVerifier = zkproof.NewPrecheckVerifier(verifier, locals, a.Logger)
				a.Logger.Infof("Local proof precheck enabled for %d attestation types", len(locals))
			}

			// ----- BLOCKING WRITES (DEV DEPLOYMENTS) -----
			var writer verification.LedgerWriter
			ledgerConf := a.Config.GetLedgerConfig()
			if ledgerConf.SignerKey != "" {
				pipeline, err := ledger.NewPipeline(provider, ledgerConf, a.Logger)
				if err != nil {
					a.Logger.Fatal(err, "Cannot build the ledger write pipeline")
				}
				writer = pipeline
			} else {
				a.Logger.Info("NEAR_SIGNER_KEY not set, blocking writes disabled")
			}

			handler, service = verification.Build(statusstore.GetDatabaseConnection(), proofVerifier, reader, writer)
		}).

		// ----- WORKERS -----
		AddWorkerServices(
			verification.NewResultsConsumer(service),
			verification.NewFailuresConsumer(service),
			logaudit.NewSinkWorker(logService),
			statusstore.NewSessionSweeper(
				statusstore.NewRepository(statusstore.GetDatabaseConnection()),
				statusstore.DefaultSessionTTL,
			),
		).

		// ----- MIDDLEWARE -----
		AddGinMiddleware(
			rest.NewMiddleware("*", corsMiddleware()),
			rest.NewMiddleware("v1/internal", rest.InternalAuthMiddleware()),
		).

		// ----- ROUTES -----
		AddGinRoutes(
			rest.NewRoute(rest.POST, "v1", "verification/submit", handler.SubmitVerification),
			rest.NewRoute(rest.GET, "v1", "verification/:session_id/status", handler.GetStatus),
			rest.NewRoute(rest.POST, "v1", "webhooks/kyc", handler.KycWebhook),

			// Registry reads
			rest.NewRoute(rest.GET, "v1", "accounts/:account_id/record", handler.GetRecord),
			rest.NewRoute(rest.GET, "v1", "accounts/:account_id/verified", handler.IsVerified),

			// Log audit, token-guarded
			rest.NewRoute(rest.GET, "v1/internal", "logs", logHandler.GetLogs),
			rest.NewRoute(rest.GET, "v1/internal", "logs/service/:service", logHandler.GetLogsByService),
			rest.NewRoute(rest.GET, "v1/internal", "logs/level/:level", logHandler.GetLogsByLevel),

			// DEV ONLY:
			rest.NewRoute(rest.POST, "v1", "verification/verify-blocking", handler.VerifyBlocking),
		).
		AddSwagger().
		InitGinRouter().
		Build().
		Start()
}
