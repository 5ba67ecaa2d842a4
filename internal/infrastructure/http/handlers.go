package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bloomwithanjli/checkout/internal/application/checkout"
	"github.com/bloomwithanjli/checkout/internal/application/download"
	"github.com/bloomwithanjli/checkout/internal/application/verification"
	"github.com/bloomwithanjli/checkout/internal/application/webhook"
)

type Handler struct {
	Checkout     *checkout.Service
	Verification *verification.Service
	Download     *download.Service
	Webhook      *webhook.Service
}

type createOrderRequest struct {
	Amount int64  `json:"amount"`
	Email  string `json:"email"`
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	Email             string `json:"email"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and email are required"})
		return
	}

	ord, err := h.Checkout.CreateOrder(c.Request.Context(), req.Amount, req.Email)
	switch {
	case errors.Is(err, checkout.ErrInvalidAmount), errors.Is(err, checkout.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": checkout.ErrOrderCreation.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       ord.ID,
		"amount":   ord.Amount,
		"currency": ord.Currency,
		"receipt":  ord.Receipt,
	})
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   verification.ErrMissingFields.Error(),
		})
		return
	}

	res, err := h.Verification.Verify(
		c.Request.Context(),
		req.RazorpayOrderID,
		req.RazorpayPaymentID,
		req.RazorpaySignature,
		req.Email,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "payment verified successfully",
		"payment_id":   res.PaymentID,
		"download_url": res.DownloadURL,
	})
}

func (h *Handler) DownloadGuide(c *gin.Context) {
	paymentID := c.Param("paymentId")

	path, err := h.Download.Authorize(c.Request.Context(), paymentID)
	switch {
	case errors.Is(err, download.ErrPaymentNotCaptured):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	case errors.Is(err, download.ErrPaymentNotFound), errors.Is(err, download.ErrGuideUnavailable):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to download guide"})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.FileAttachment(path, h.Download.Filename)
}

func (h *Handler) ReceiveWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	sig := c.GetHeader("x-razorpay-signature")

	if err := h.Webhook.Process(body, sig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
