package messaging

// Exchanges (topic, durable).
const (
	UserEventsExchange           = "user_events"
	TrainingNotificationExchange = "training_notifications"
	ExchangeTypeTopic            = "topic"
)

// Routing keys.
const (
	RoutingKeyUserRegistered   = "user.registered"
	RoutingKeyUserRolesChanged = "user.roles_changed"
	// RoutingKeyTrainingPrefix + NotificationKind, например training.PROMOTED_FROM_RESERVE.
	RoutingKeyTrainingPrefix = "training."
)

// Queues.
const (
	AccountUserEventsQueue = "account_user_events"
)
