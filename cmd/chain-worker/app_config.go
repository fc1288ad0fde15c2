package main

import (
	"os"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/ledger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/rabbitmq"
)

const nearSignerKeyEnv = "NEAR_SIGNER_KEY"

type WorkerConfigJson struct {
	LoggerConf   logger.LoggerConfigJson    `json:"logger"`
	RabbitmqConf rabbitmq.RabbimqConfigJson `json:"rabbitmq"`
	NearConf     NearConfigJson             `json:"near"`
}

func (wcj WorkerConfigJson) ConvertToDomain() WorkerConfig {
	return WorkerConfig{
		LoggerConf:   wcj.LoggerConf.ConvertToDomain(),
		RabbitmqConf: wcj.RabbitmqConf.ConvertToDomain(),
		NearConf:     wcj.NearConf.ConvertToDomain(),
	}
}

type WorkerConfig struct {
	LoggerConf   logger.LoggerConfig
	RabbitmqConf rabbitmq.RabbitmqConfig
	NearConf     NearConfig
}

func (wc WorkerConfig) GetLoggerConfig() logger.LoggerConfig {
	return wc.LoggerConf
}

func (wc WorkerConfig) GetRabbitmqConfig() rabbitmq.RabbitmqConfig {
	return wc.RabbitmqConf
}

// GetRestApiPort satisfies the builder contract; the worker has no REST
// surface.
func (wc WorkerConfig) GetRestApiPort() uint16 {
	return 0
}

// GetLedgerConfig assembles the write-pipeline config. The signer key comes
// exclusively from the NEAR_SIGNER_KEY environment variable; the worker
// cannot run without it.
func (wc WorkerConfig) GetLedgerConfig() ledger.Config {
	return ledger.Config{
		ContractId:   wc.NearConf.ContractId,
		SignerId:     wc.NearConf.SignerId,
		SignerKey:    os.Getenv(nearSignerKeyEnv),
		Network:      wc.NearConf.Network,
		Gas:          wc.NearConf.Gas,
		DepositYocto: wc.NearConf.DepositYocto,
	}
}

type NearConfigJson struct {
	Network      string   `json:"network"`
	RpcEndpoints []string `json:"rpc_endpoints"`
	ContractId   string   `json:"contract_id"`
	SignerId     string   `json:"signer_id"`
	Gas          uint64   `json:"gas"`
	DepositYocto string   `json:"deposit_yocto"`
}

type NearConfig struct {
	Network      string
	RpcEndpoints []string
	ContractId   string
	SignerId     string
	Gas          uint64
	DepositYocto string
}

func (ncj NearConfigJson) ConvertToDomain() NearConfig {
	return NearConfig{
		Network:      ncj.Network,
		RpcEndpoints: ncj.RpcEndpoints,
		ContractId:   ncj.ContractId,
		SignerId:     ncj.SignerId,
		Gas:          ncj.Gas,
		DepositYocto: ncj.DepositYocto,
	}
}
