package model

// QRRequest is the body of POST /generate-qr.
type QRRequest struct {
	Text string `json:"text"`
}

type QRResponse struct {
	QRCodeURL string `json:"qrCodeUrl"`
}

// EmailRequest is the body of POST /send-email.
type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
