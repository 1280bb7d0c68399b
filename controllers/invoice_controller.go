package controllers

import (
	"net/http"
	"time"

	"rental-backend/middleware"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type InvoiceController struct {
	Invoices *services.InvoiceService
}

func NewInvoiceController(invoices *services.InvoiceService) *InvoiceController {
	return &InvoiceController{Invoices: invoices}
}

func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	invoices, err := ic.Invoices.GetAll(middleware.OwnerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoices)
}

func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	invoice, err := ic.Invoices.RefreshStatus(middleware.OwnerID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

func (ic *InvoiceController) CreateInvoice(c *gin.Context) {
	var spec services.InvoiceSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	invoice, err := ic.Invoices.Create(middleware.OwnerID(c), spec)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, invoice)
}

type paymentPayload struct {
	PaidAmount float64    `json:"paidAmount"`
	PaidDate   *time.Time `json:"paidDate,omitempty"`
}

func (ic *InvoiceController) ApplyPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload paymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	invoice, err := ic.Invoices.ApplyPayment(middleware.OwnerID(c), id, payload.PaidAmount, payload.PaidDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}
