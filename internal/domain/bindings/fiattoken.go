package bindings

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
)

// FiatToken implementation functions, addressed through the proxy or directly.
var (
	FiatTokenInitialize = w3.MustNewFunc(
		"initialize(string,string,string,uint8,address,address,address,address)", "",
	)
	FiatTokenInitializeV2   = w3.MustNewFunc("initializeV2(string)", "")
	FiatTokenInitializeV2_1 = w3.MustNewFunc("initializeV2_1(address)", "")

	FiatTokenName         = w3.MustNewFunc("name()", "string")
	FiatTokenSymbol       = w3.MustNewFunc("symbol()", "string")
	FiatTokenCurrency     = w3.MustNewFunc("currency()", "string")
	FiatTokenDecimals     = w3.MustNewFunc("decimals()", "uint8")
	FiatTokenOwner        = w3.MustNewFunc("owner()", "address")
	FiatTokenMasterMinter = w3.MustNewFunc("masterMinter()", "address")
	FiatTokenPauser       = w3.MustNewFunc("pauser()", "address")
	FiatTokenBlacklister  = w3.MustNewFunc("blacklister()", "address")
)

// InitializeArgs are the arguments of the V1 initializer
type InitializeArgs struct {
	Name         string
	Symbol       string
	Currency     string
	Decimals     uint8
	MasterMinter common.Address
	Pauser       common.Address
	Blacklister  common.Address
	Owner        common.Address
}

func EncodeInitialize(args InitializeArgs) ([]byte, error) {
	return FiatTokenInitialize.EncodeArgs(
		args.Name,
		args.Symbol,
		args.Currency,
		args.Decimals,
		args.MasterMinter,
		args.Pauser,
		args.Blacklister,
		args.Owner,
	)
}

func DecodeInitialize(input []byte) (InitializeArgs, error) {
	var args InitializeArgs
	err := FiatTokenInitialize.DecodeArgs(input,
		&args.Name,
		&args.Symbol,
		&args.Currency,
		&args.Decimals,
		&args.MasterMinter,
		&args.Pauser,
		&args.Blacklister,
		&args.Owner,
	)
	return args, err
}

func EncodeInitializeV2(newName string) ([]byte, error) {
	return FiatTokenInitializeV2.EncodeArgs(newName)
}

func EncodeInitializeV2_1(lostAndFound common.Address) ([]byte, error) {
	return FiatTokenInitializeV2_1.EncodeArgs(lostAndFound)
}
