package constants

// Switch endpoints, relative to the switch base URL
const (
	PathSwitchTransfers      = "/api/v2/switch/transfers"
	PathSwitchTransferStatus = "/api/v2/switch/transfers/%s"
	PathSwitchReturns        = "/api/v2/switch/returns"
	PathSwitchHealth         = "/api/v2/switch/health"
	PathSwitchBanks          = "/api/v1/instituciones"
	PathSwitchFundingByBIC   = "/api/v1/funding/available/%s/0"
	PathSwitchFunding        = "/api/v2/switch/funding"
)

// Core banking endpoints
const (
	PathLedgerBalance     = "/api/v1/cuentas/%d/saldo"
	PathDirectoryAccount  = "/api/v1/cuentas/%d"
	PathDirectoryByNumber = "/api/v1/cuentas/numero/%s"
	PathDirectoryCustomer = "/api/v1/clientes/%d"
)

// Channel, currency and account type values the engine stamps on records
const (
	ChannelWeb        = "WEB"
	ChannelSwitch     = "SWITCH"
	CurrencyUSD       = "USD"
	AccountTypeSaving = "AHORROS"
)
