package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/fakhrymubarak/city-dashboard/internal/config"
	"github.com/fakhrymubarak/city-dashboard/internal/model"
	"github.com/fakhrymubarak/city-dashboard/internal/service"
)

type QRServiceInterface interface {
	GenerateDataURL(text string) (string, error)
}

type EmailServiceInterface interface {
	Send(ctx context.Context, to, subject, text string) error
}

type QRHandler struct {
	QRService QRServiceInterface
}

func NewQRHandler(svc QRServiceInterface) *QRHandler {
	return &QRHandler{QRService: svc}
}

func (h *QRHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.QRRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.QRService.GenerateDataURL(req.Text)
	if errors.Is(err, service.ErrEmptyText) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		config.GetLogger().Errorw("Failed to generate QR code", "error", err)
		writeError(w, http.StatusInternalServerError, "Error generating QR code")
		return
	}
	writeJSONResponse(w, http.StatusOK, model.QRResponse{QRCodeURL: url})
}

type EmailHandler struct {
	EmailService EmailServiceInterface
}

func NewEmailHandler(svc EmailServiceInterface) *EmailHandler {
	return &EmailHandler{EmailService: svc}
}

func (h *EmailHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req model.EmailRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.EmailService.Send(r.Context(), req.To, req.Subject, req.Text)
	switch {
	case err == nil:
		writeJSONResponse(w, http.StatusOK, model.MessageResponse("Email sent successfully"))
	case errors.Is(err, service.ErrMissingRecipient), errors.Is(err, service.ErrInvalidRecipient):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Error sending email")
	}
}
