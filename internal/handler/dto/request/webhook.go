package request

// GatewayEvent mirrors the callback envelope the payment provider posts.
// It is decoded only after the raw-body signature check passed.
type GatewayEvent struct {
	Data struct {
		Transaction struct {
			Reference string `json:"reference"`
			Status    string `json:"status"`
			ID        string `json:"id"`
		} `json:"transaction"`
	} `json:"data"`
}
