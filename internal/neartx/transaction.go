package neartx

import (
	"math/big"

	"github.com/near/borsh-go"
)

// Transaction matches the protocol's borsh layout field for field.
type Transaction struct {
	SignerId   string
	PublicKey  PublicKey
	Nonce      uint64
	ReceiverId string
	BlockHash  [32]uint8
	Actions    []Action
}

// Action is the protocol's action enum. The variant order is fixed by the
// protocol; FunctionCall sits at discriminant 2.
type Action struct {
	Enum           borsh.Enum `borsh_enum:"true"`
	CreateAccount  CreateAccount
	DeployContract DeployContract
	FunctionCall   FunctionCall
	Transfer       Transfer
	Stake          Stake
	AddKey         AddKey
	DeleteKey      DeleteKey
	DeleteAccount  DeleteAccount
}

const (
	actionCreateAccount borsh.Enum = iota
	actionDeployContract
	actionFunctionCall
	actionTransfer
	actionStake
	actionAddKey
	actionDeleteKey
	actionDeleteAccount
)

type CreateAccount struct{}

type DeployContract struct {
	Code []uint8
}

type FunctionCall struct {
	MethodName string
	Args       []uint8
	Gas        uint64
	Deposit    big.Int
}

type Transfer struct {
	Deposit big.Int
}

type Stake struct {
	Stake     big.Int
	PublicKey PublicKey
}

type AccessKey struct {
	Nonce      uint64
	Permission AccessKeyPermission
}

type AccessKeyPermission struct {
	Enum         borsh.Enum `borsh_enum:"true"`
	FunctionCall FunctionCallPermission
	FullAccess   FullAccessPermission
}

type FunctionCallPermission struct {
	Allowance   *big.Int
	ReceiverId  string
	MethodNames []string
}

type FullAccessPermission struct{}

type AddKey struct {
	PublicKey PublicKey
	AccessKey AccessKey
}

type DeleteKey struct {
	PublicKey PublicKey
}

type DeleteAccount struct {
	BeneficiaryId string
}

// NewFunctionCallAction builds the single action the write pipeline emits.
func NewFunctionCallAction(methodName string, args []byte, gas uint64, deposit *big.Int) Action {
	call := FunctionCall{
		MethodName: methodName,
		Args:       args,
		Gas:        gas,
	}
	if deposit != nil {
		call.Deposit = *deposit
	}
	return Action{
		Enum:         actionFunctionCall,
		FunctionCall: call,
	}
}

func NewTransferAction(deposit *big.Int) Action {
	transfer := Transfer{}
	if deposit != nil {
		transfer.Deposit = *deposit
	}
	return Action{
		Enum:     actionTransfer,
		Transfer: transfer,
	}
}
