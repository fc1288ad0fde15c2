package main

import (
	"os"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/ledger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/zkproof"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/rabbitmq"
)

const (
	databaseDsnEnv   = "DATABASE_DSN"
	nearSignerKeyEnv = "NEAR_SIGNER_KEY"
)

type ApiConfigJson struct {
	LoggerConf      logger.LoggerConfigJson    `json:"logger"`
	RabbitmqConf    rabbitmq.RabbimqConfigJson `json:"rabbitmq"`
	RestConf        ApiRestConfigJson          `json:"rest"`
	DatabaseConf    ApiDatabaseConfigJson      `json:"database"`
	NearConf        NearConfigJson             `json:"near"`
	IdentityHubConf zkproof.Config             `json:"identityhub"`
}

func (acj ApiConfigJson) ConvertToDomain() ApiConfig {
	return ApiConfig{
		LoggerConf:      acj.LoggerConf.ConvertToDomain(),
		RabbitmqConf:    acj.RabbitmqConf.ConvertToDomain(),
		RestConf:        acj.RestConf.ConvertToDomain(),
		DatabaseConf:    acj.DatabaseConf.ConvertToDomain(),
		NearConf:        acj.NearConf.ConvertToDomain(),
		IdentityHubConf: acj.IdentityHubConf,
	}
}

type ApiConfig struct {
	LoggerConf      logger.LoggerConfig
	RabbitmqConf    rabbitmq.RabbitmqConfig
	RestConf        ApiRestConfig
	DatabaseConf    ApiDatabaseConfig
	NearConf        NearConfig
	IdentityHubConf zkproof.Config
}

func (ac ApiConfig) GetLoggerConfig() logger.LoggerConfig {
	return ac.LoggerConf
}

func (ac ApiConfig) GetRabbitmqConfig() rabbitmq.RabbitmqConfig {
	return ac.RabbitmqConf
}

func (ac ApiConfig) GetRestApiPort() uint16 {
	return ac.RestConf.Port
}

// GetDatabaseConnectionString prefers the DATABASE_DSN environment variable
// so credentials never have to live in config.json.
func (ac ApiConfig) GetDatabaseConnectionString() string {
	if dsn := os.Getenv(databaseDsnEnv); dsn != "" {
		return dsn
	}
	return ac.DatabaseConf.ConnectionString
}

// GetLedgerConfig assembles the write-pipeline config. The signer key comes
// exclusively from the NEAR_SIGNER_KEY environment variable; without it the
// API stays read-only and the blocking route reports itself disabled.
func (ac ApiConfig) GetLedgerConfig() ledger.Config {
	return ledger.Config{
		ContractId:   ac.NearConf.ContractId,
		SignerId:     ac.NearConf.SignerId,
		SignerKey:    os.Getenv(nearSignerKeyEnv),
		Network:      ac.NearConf.Network,
		Gas:          ac.NearConf.Gas,
		DepositYocto: ac.NearConf.DepositYocto,
	}
}

type ApiRestConfigJson struct {
	Port uint16 `json:"port"`
}

type ApiRestConfig struct {
	Port uint16
}

func (arcj ApiRestConfigJson) ConvertToDomain() ApiRestConfig {
	return ApiRestConfig{
		Port: arcj.Port,
	}
}

type ApiDatabaseConfigJson struct {
	ConnectionString string `json:"connection_string"`
}

type ApiDatabaseConfig struct {
	ConnectionString string
}

func (adcj ApiDatabaseConfigJson) ConvertToDomain() ApiDatabaseConfig {
	return ApiDatabaseConfig{
		ConnectionString: adcj.ConnectionString,
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
