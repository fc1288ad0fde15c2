package utilities

import "github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"

func FailOnError(err error, msg string) {
	if err != nil {
		logger.Default().Fatal(err, msg)
	}
}
