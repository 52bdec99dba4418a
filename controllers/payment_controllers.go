package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/middlewares"
	"github.com/aryasaputra/food-order-app/models"
	"github.com/aryasaputra/food-order-app/services"
	"github.com/aryasaputra/food-order-app/utils"
)

type PaymentController struct {
	payments *services.PaymentService
	orders   *services.OrderService
}

func NewPaymentController(db *gorm.DB, rdb *redis.Client) *PaymentController {
	return &PaymentController{
		payments: services.NewPaymentService(db, rdb),
		orders:   services.NewOrderService(db),
	}
}

// ProcessPayment membuat dan menyelesaikan pembayaran untuk satu order.
func (pc *PaymentController) ProcessPayment(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	type request struct {
		OrderID       uint   `json:"order_id" binding:"required"`
		PaymentMethod string `json:"payment_method" binding:"required"`
		TransactionID string `json:"transaction_id"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.payments.Process(c.Request.Context(), user, req.OrderID, req.PaymentMethod, req.TransactionID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Payment %d completed for order %d (%s)",
		payment.ID, payment.OrderID, utils.FormatCurrencyIDR(payment.Amount))
	utils.RespondJSON(c, http.StatusCreated, "Payment completed", payment)
}

// ShowPayment: pembayaran untuk satu order milik user; data=null jika
// belum ada.
func (pc *PaymentController) ShowPayment(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.payments.Show(user, uint(orderID))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}

// GetPaymentInstructions merangkai instruksi bayar untuk satu order
// pending: metode yang aktif, data display, dan nominal terformat.
func (pc *PaymentController) GetPaymentInstructions(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := pc.orders.Show(user, uint(orderID))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	settings, err := pc.payments.GetSettings(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	methods := []gin.H{}
	if settings.QRISEnabled {
		methods = append(methods, gin.H{
			"method":         models.PaymentMethodQRIS,
			"qris_image_url": settings.QRISImageUrl,
		})
	}
	if settings.TransferEnabled {
		methods = append(methods, gin.H{
			"method":         models.PaymentMethodBankTransfer,
			"bank_name":      settings.BankName,
			"account_number": settings.BankAccountNumber,
			"account_holder": settings.BankAccountHolder,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Payment instructions", gin.H{
		"order_code":      order.Code,
		"amount":          order.TotalPrice,
		"amount_display":  utils.FormatCurrencyIDR(order.TotalPrice),
		"payment_methods": methods,
	})
}

// AttachProof menempelkan URL bukti bayar ke pembayaran order user.
func (pc *PaymentController) AttachProof(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		ProofUrl string `json:"proof_url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.payments.AttachProof(user, uint(orderID), req.ProofUrl)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment proof attached", payment)
}

// GetAllPayments -> tampilan admin, filter status opsional.
func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	viewer, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	status := c.Query("status")

	payments, total, err := pc.payments.GetAllPayments(viewer, status, page, perPage)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All payments", gin.H{
		"payments": payments,
		"total":    total,
	})
}

// GetPaymentSettings: konfigurasi metode pembayaran (staff).
func (pc *PaymentController) GetPaymentSettings(c *gin.Context) {
	settings, err := pc.payments.GetSettings(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment settings", settings)
}

// UpdatePaymentSettings: superadmin mengubah konfigurasi; cache ikut
// di-invalidate oleh service.
func (pc *PaymentController) UpdatePaymentSettings(c *gin.Context) {
	type request struct {
		QRISEnabled       *bool   `json:"qris_enabled"`
		QRISImageUrl      *string `json:"qris_image_url"`
		TransferEnabled   *bool   `json:"transfer_enabled"`
		BankName          *string `json:"bank_name"`
		BankAccountNumber *string `json:"bank_account_number"`
		BankAccountHolder *string `json:"bank_account_holder"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if req.QRISEnabled != nil {
		updates["qris_enabled"] = *req.QRISEnabled
	}
	if req.QRISImageUrl != nil {
		updates["qris_image_url"] = *req.QRISImageUrl
	}
	if req.TransferEnabled != nil {
		updates["transfer_enabled"] = *req.TransferEnabled
	}
	if req.BankName != nil {
		updates["bank_name"] = *req.BankName
	}
	if req.BankAccountNumber != nil {
		updates["bank_account_number"] = *req.BankAccountNumber
	}
	if req.BankAccountHolder != nil {
		updates["bank_account_holder"] = *req.BankAccountHolder
	}

	settings, err := pc.payments.UpdateSettings(c.Request.Context(), updates)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment settings updated", settings)
}
