package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/queries/get_rule"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/queries/list_rules"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/usecases/create_rule"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/usecases/evaluate_quote"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/usecases/set_rule_active"
	"github.com/light-bringer/printshop-pricing/internal/pkg/validate"
	"github.com/light-bringer/printshop-pricing/internal/transport/dto"
)

// Handler serves the pricing JSON API.
type Handler struct {
	// Commands
	createRule    *create_rule.Interactor
	setRuleActive *set_rule_active.Interactor
	evaluateQuote *evaluate_quote.Interactor

	// Queries
	getRule   *get_rule.Query
	listRules *list_rules.Query
}

// NewHandler creates a new HTTP pricing handler.
func NewHandler(
	createRule *create_rule.Interactor,
	setRuleActive *set_rule_active.Interactor,
	evaluateQuote *evaluate_quote.Interactor,
	getRule *get_rule.Query,
	listRules *list_rules.Query,
) *Handler {
	return &Handler{
		createRule:    createRule,
		setRuleActive: setRuleActive,
		evaluateQuote: evaluateQuote,
		getRule:       getRule,
		listRules:     listRules,
	}
}

// EvaluateQuote handles POST /api/v1/quotes/evaluate.
func (h *Handler) EvaluateQuote(c *gin.Context) {
	var req dto.EvaluateQuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.evaluateQuote.Execute(c.Request.Context(), &evaluate_quote.Request{Quote: req.Quote.ToDomain()})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEvaluation(result))
}

// EvaluateQuoteBatch handles POST /api/v1/quotes/evaluate/batch.
func (h *Handler) EvaluateQuoteBatch(c *gin.Context) {
	var req dto.EvaluateBatchRequest
	if !bindJSON(c, &req) {
		return
	}

	quotes := make([]*domain.Quote, len(req.Quotes))
	for i, q := range req.Quotes {
		quotes[i] = q.ToDomain()
	}

	results, err := h.evaluateQuote.ExecuteBatch(c.Request.Context(), quotes)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBatch(results))
}

// GetQuoteDiscount handles GET /api/v1/quotes/:id/discount.
func (h *Handler) GetQuoteDiscount(c *gin.Context) {
	result, err := h.evaluateQuote.ExecuteStored(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEvaluation(result))
}

// ListRules handles GET /api/v1/rules.
func (h *Handler) ListRules(c *gin.Context) {
	var filter dto.ListRulesRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(fmt.Errorf("%w: %v", validate.ErrValidation, err))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.Error(err)
		return
	}

	list, err := h.listRules.Execute(c.Request.Context(), filter.ToRequest())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRuleList(list))
}

// GetRule handles GET /api/v1/rules/:id.
func (h *Handler) GetRule(c *gin.Context) {
	view, err := h.getRule.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRuleView(view))
}

// CreateRule handles POST /api/v1/rules.
func (h *Handler) CreateRule(c *gin.Context) {
	var req dto.CreateRuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.createRule.Execute(c.Request.Context(), req.ToRequest())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromRule(rule))
}

// SetRuleActive handles PATCH /api/v1/rules/:id/active.
func (h *Handler) SetRuleActive(c *gin.Context) {
	var req dto.SetRuleActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.setRuleActive.Execute(c.Request.Context(), &set_rule_active.Request{
		RuleID: c.Param("id"),
		Active: *req.Active,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRule(rule))
}

// bindJSON decodes and validates the body, recording any failure on c.
func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.Error(fmt.Errorf("%w: invalid request body: %v", validate.ErrValidation, err))
		return false
	}
	if err := validate.Struct(dest); err != nil {
		c.Error(err)
		return false
	}
	return true
}
