package handlers

import (
	"net/http"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/response"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/service"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/transfer"
)

// TransferHandler handles HTTP requests for bulk import and export.
type TransferHandler struct {
	transferService *service.TransferService
}

// NewTransferHandler creates a new TransferHandler with the provided service dependency.
func NewTransferHandler(transferService *service.TransferService) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
	}
}

// Import handles POST requests carrying a bulk payload in the request body.
// The whole payload is rejected if any record is malformed.
//
// Endpoint: POST /api/import?format=
// Request Body: tuple-literal or JSON payload; format is detected when omitted
// Response: 200 OK with ImportResult
// Error: 400 Bad Request if the format is unknown or the payload is malformed
// Error: 500 Internal Server Error if the write fails
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	format, err := transfer.ParseFormatName(r.URL.Query().Get("format"))
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToImportPrices.Error())
		return
	}

	payload, err := readBody(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.transferService.Import(r.Context(), payload, format)
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToImportPrices.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Export handles GET requests serializing stored records.
// Repeat the city parameter to export several cities; omit it to export all of them.
//
// Endpoint: GET /api/export?format=&city=
// Response: 200 OK with the payload as application/json or text/plain
// Error: 400 Bad Request if the format is unknown
// Error: 500 Internal Server Error if retrieval fails
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	format, err := transfer.ParseFormatName(query.Get("format"))
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToExportPrices.Error())
		return
	}
	if format == transfer.FormatAuto {
		format = transfer.FormatJSON
	}

	payload, err := h.transferService.Export(r.Context(), format, query["city"]...)
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToExportPrices.Error())
		return
	}

	response.RespondPayload(w, http.StatusOK, format.ContentType(), "prices"+format.Extension(), payload)
}
