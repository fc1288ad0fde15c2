package main

import (
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/chainworker"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/ledger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/nearrpc"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/rpcpool"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/appbuilder"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/rabbitmq"
)

func main() {

	var pipeline *ledger.Pipeline

	appbuilder.New[WorkerConfigJson, WorkerConfig]().
		InitLogger(logger.GlobalLoggerConfig{
			Args: []logger.LoggerArg{{Key: "service", Value: "chain-worker"}},
		}).
		ResolveEnvironment().
		LoadConfig("config.json").

		// ----- RABBITMQ -----
		InitRabbitmqConnection().
		InitRabbitmqRegistries().
		WithOption(func(a *appbuilder.AppBuilder[WorkerConfigJson, WorkerConfig]) {
			// ----- RABBITMQ LOGGING SINK -----
			logPublisher := rabbitmq.GetPublisher("LogPublisher")
			logSink := rabbitmq.CreateRabbitmqLoggerSink(logPublisher, "chain-worker")
			logger.AddSinkToLoggerInstance(a.Logger, logSink)
		}).
		WithOption(func(a *appbuilder.AppBuilder[WorkerConfigJson, WorkerConfig]) {
			a.Logger.WithLevel(a.Config.GetLoggerConfig().LogLevel)

			// ----- NEAR WRITE PIPELINE -----
			pool, err := rpcpool.New(a.Config.NearConf.RpcEndpoints, rpcpool.WithLogger(a.Logger))
			if err != nil {
				a.Logger.Fatal(err, "Cannot build the NEAR endpoint pool")
			}
			provider := nearrpc.NewProvider(pool)

			pipeline, err = ledger.NewPipeline(provider, a.Config.GetLedgerConfig(), a.Logger)
			if err != nil {
				a.Logger.Fatal(err, "Cannot build the ledger write pipeline")
			}
		}).

		// ----- WORKERS -----
		AddWorkerServices(
			chainworker.NewWorker(pipeline),
		).
		Build().
		Start()
}
