package mailer

// OrderConfirmationJob is the JSON payload put on the RabbitMQ queue
// after a successful order placement. The email worker renders and
// sends it; the order itself is already committed, so delivery is
// best-effort.
type OrderConfirmationJob struct {
	To           string `json:"to"`
	CustomerName string `json:"customer_name"`
	OrderID      int64  `json:"order_id"`
	ProductName  string `json:"product_name"`
	Quantity     int    `json:"quantity"`
	TotalPrice   string `json:"total_price"`
	OrderDate    string `json:"order_date"`
}
