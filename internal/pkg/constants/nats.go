package constants

// JetStream streams, subjects and durable consumers
const (
	StreamTransactionEvents = "TRANSACTION_EVENTS"
	// SubjectTransactionEvents is suffixed with the lowercase status
	SubjectTransactionEvents    = "transactions.events"
	SubjectTransactionEventsAll = "transactions.events.>"

	StreamSwitchInbound      = "SWITCH_INBOUND"
	SubjectInboundTransfers  = "switch.transfers.inbound"
	ConsumerInboundTransfers = "transactions-inbound"
)

// NSQ topics
const (
	TopicTransactionEvents = "transactions.events"
)
