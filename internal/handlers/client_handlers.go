package handlers

import (
	"errors"
	"net/http"

	"jm_store_backend/internal/services"
	"jm_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClientHandler holds the client service.
type ClientHandler struct {
	clientService services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

// Register handles the public VIP registration. The same WhatsApp contact
// always resolves to the same identity and access code.
func (h *ClientHandler) Register(c *gin.Context) {
	var req services.RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Register: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.clientService.Register(req)
	if err != nil {
		if errors.Is(err, services.ErrClientValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "Register: Error from clientService.Register")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register client.", "Internal error"))
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

// GetClients handles the admin-only client listing.
func (h *ClientHandler) GetClients(c *gin.Context) {
	clients, err := h.clientService.GetClients()
	if err != nil {
		utils.LogError(err, "GetClients: Error from clientService.GetClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch clients.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, clients)
}

// LookupClient handles session revalidation: it confirms a WhatsApp contact
// is still registered and returns the identity fields a session needs. The
// access code is deliberately not included.
func (h *ClientHandler) LookupClient(c *gin.Context) {
	whatsapp := c.Query("whatsapp")
	if utils.IsEmpty(whatsapp) {
		utils.RespondValidationFailed(c, "whatsapp query parameter is required")
		return
	}

	client, err := h.clientService.GetClientByWhatsApp(whatsapp)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
		} else {
			utils.LogError(err, "LookupClient: Error from clientService.GetClientByWhatsApp")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to look up client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": client.ID, "firstName": client.FirstName, "whatsapp": client.WhatsApp})
}

// GetClientCount handles the public follower-counter read. The fixed display
// base offset is applied by the storefront, not here.
func (h *ClientHandler) GetClientCount(c *gin.Context) {
	count, err := h.clientService.Count()
	if err != nil {
		utils.LogError(err, "GetClientCount: Error from clientService.Count")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to count clients.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
