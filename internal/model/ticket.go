package model

type ETicket struct {
	OrderID       string `json:"order_id"`
	BookingID     string `json:"booking_id,omitempty"`
	ReferenceCode string `json:"reference_code"`
	QRCodeURL     string `json:"qr_code_url"`
	TicketCount   int32  `json:"ticket_count"`
	ItemTitle     string `json:"item_title"`
	SeatType      string `json:"seat_type,omitempty"`
}

type PlaybackGrant struct {
	OrderID   string `json:"order_id"`
	VideoID   string `json:"video_id"`
	Title     string `json:"title"`
	StreamURL string `json:"stream_url"`
}

// PurchaseResult is the terminal, read-only view of a confirmed purchase.
type PurchaseResult struct {
	Kind      ItemKind       `json:"kind"`
	Ticket    *ETicket       `json:"ticket,omitempty"`
	Playback  *PlaybackGrant `json:"playback,omitempty"`
	Celebrate bool           `json:"celebrate"`
}
