package rabbitmq

// WorkerService is a long-running unit started by the application runtime,
// typically a queue consumer or a cron-driven job.
type WorkerService interface {
	GetServiceName() string
	StartService()
}
