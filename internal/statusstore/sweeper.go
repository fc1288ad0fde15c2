package statusstore

import (
	"time"

	"github.com/robfig/cron"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/rabbitmq"
)

const sweeperWorkerName = "SessionSweeperCronWorker"

// DefaultSessionTTL leaves enough room for the slowest confirmation schedule
// plus queue latency before a pending session is written off.
const DefaultSessionTTL = 15 * time.Minute

// SessionSweeper expires pending sessions nobody will ever resolve, so
// status polling clients see "expired" instead of a forever-pending session
// when a worker crashed mid-write.
type SessionSweeper struct {
	repository Repository
	cron       *cron.Cron
	ttl        time.Duration
}

func NewSessionSweeper(repository Repository, ttl time.Duration) rabbitmq.WorkerService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionSweeper{
		repository: repository,
		cron:       cron.New(),
		ttl:        ttl,
	}
}

func (sw *SessionSweeper) GetServiceName() string {
	return sweeperWorkerName
}

func (sw *SessionSweeper) StartService() {
	err := sw.cron.AddFunc("@every 1m", func() { sw.sweep() })
	if err != nil {
		logger.Default().Errorf(err, "Could not add function to %s", sweeperWorkerName)
	}

	sw.cron.Start()
}

func (sw *SessionSweeper) sweep() {
	sweeperLogger := logger.Default()

	expired, err := sw.repository.ExpireStale(time.Now().UTC().Add(-sw.ttl))
	if err != nil {
		sweeperLogger.Error(err, "Could not expire stale sessions")
		return
	}
	if expired > 0 {
		sweeperLogger.Infof("Expired %d stale verification sessions", expired)
	}
}
