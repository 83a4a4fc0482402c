package models

// TicketNotification is the message published to RabbitMQ when a ticket is
// issued or upgraded. The notification consumer turns it into a badge email
// and records the delivery outcome on the registrant.
type TicketNotification struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Email      string `json:"email"`
	TicketCode string `json:"ticket_code"`
	Category   string `json:"category"`
}
