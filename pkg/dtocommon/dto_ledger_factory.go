package dtocommon

import (
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/reasoncodes"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/utilities"
)

type LedgerWriteDtoFactory interface {
	CreateErrorDto(error, reasoncodes.ReasonCode) utilities.Serializable
	CreateInfoDto(reasoncodes.ReasonCode) utilities.Serializable
}

type ledgerWriteFailureDtoFactory struct {
	SessionId   string
	RequestBody []byte
}

func NewLedgerWriteFailureFactory(sessionId string, requestBody []byte) LedgerWriteDtoFactory {
	return ledgerWriteFailureDtoFactory{
		SessionId:   sessionId,
		RequestBody: requestBody,
	}
}

func (f ledgerWriteFailureDtoFactory) CreateErrorDto(
	err error,
	reasonCode reasoncodes.ReasonCode) utilities.Serializable {
	return LedgerWriteFailureDto{
		SessionId:   f.SessionId,
		RequestBody: f.RequestBody,
		Error:       err.Error(),
		ReasonCode:  reasonCode,
	}
}

func (f ledgerWriteFailureDtoFactory) CreateInfoDto(reasonCode reasoncodes.ReasonCode) utilities.Serializable {
	return LedgerWriteFailureDto{
		SessionId:   f.SessionId,
		RequestBody: f.RequestBody,
		ReasonCode:  reasonCode,
	}
}
