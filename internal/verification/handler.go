package verification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/statusstore"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
)

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, log: logger.Default()}
}

// SubmitVerification godoc
// @Summary      Submit an identity verification
// @Description  Checks the NEP-413 challenge signature and the identity proof, then queues the ledger write
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Param        body  body      verification.SubmitRequest  true  "Submission"
// @Success      202  {object}  verification.SubmitResult  "Both checks passed and the write is queued"
// @Success      200  {object}  verification.SubmitResult  "A check failed; nothing was queued"
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/verification/submit [post]
func (h *Handler) SubmitVerification(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}

	result, err := h.service.SubmitVerification(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidSubmission) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.log.Error(err, "Submission processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process the submission"})
		return
	}
	if !result.Queued {
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

// VerifyBlocking godoc
// @Summary      Verify and write synchronously
// @Description  Same checks as submit, but the ledger write runs inline and the response carries its outcome
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Param        body  body      verification.SubmitRequest  true  "Submission"
// @Success      200  {object}  verification.BlockingResult
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  verification.BlockingResult
// @Failure      503  {object}  map[string]string
// @Router       /v1/verification/verify-blocking [post]
func (h *Handler) VerifyBlocking(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}

	result, err := h.service.VerifyBlocking(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrBlockingWritesDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Blocking writes are not configured on this deployment"})
			return
		}
		if errors.Is(err, ErrInvalidSubmission) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.log.Error(err, "Blocking verification failed")
		result.Error = err.Error()
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// KycWebhook godoc
// @Summary      KYC provider callback
// @Description  Queues a ledger write when the review answer is GREEN; anything else is acknowledged and dropped
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Param        body  body      verification.KycWebhookRequest  true  "Review outcome"
// @Success      200  {object}  verification.SubmitResult
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/webhooks/kyc [post]
func (h *Handler) KycWebhook(c *gin.Context) {
	var req KycWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}

	result, err := h.service.HandleKycCallback(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidSubmission) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.log.Error(err, "KYC callback processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process the callback"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetStatus godoc
// @Summary      Session status
// @Description  Returns the write pipeline state for a submitted session
// @Tags         Verification
// @Produce      json
// @Param        session_id  path      string  true  "Session ID"
// @Success      200  {object}  verification.StatusResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/verification/{session_id}/status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.service.GetStatus(c.Param("session_id"))
	if err != nil {
		if errors.Is(err, statusstore.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown session"})
			return
		}
		h.log.Error(err, "Session lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not look up the session"})
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetRecord godoc
// @Summary      Registry record for an account
// @Description  Reads the stored verification record straight from the registry contract
// @Tags         Registry
// @Produce      json
// @Param        account_id  path      string  true  "NEAR account ID"
// @Success      200  {object}  ledger.VerificationRecord
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/accounts/{account_id}/record [get]
func (h *Handler) GetRecord(c *gin.Context) {
	accountId := c.Param("account_id")
	record, err := h.service.GetRecord(c.Request.Context(), accountId)
	if err != nil {
		h.log.Error(err, "Registry read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read the registry"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No verification record for " + accountId})
		return
	}
	c.JSON(http.StatusOK, record)
}

// IsVerified godoc
// @Summary      Whether an account is verified
// @Description  Asks the registry contract directly; the session store plays no part
// @Tags         Registry
// @Produce      json
// @Param        account_id  path      string  true  "NEAR account ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /v1/accounts/{account_id}/verified [get]
func (h *Handler) IsVerified(c *gin.Context) {
	accountId := c.Param("account_id")
	verified, err := h.service.IsAccountVerified(c.Request.Context(), accountId)
	if err != nil {
		h.log.Error(err, "Registry read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read the registry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"account_id": accountId, "verified": verified})
}
