package pricing

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/queries/get_rule"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/queries/list_rules"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/usecases/create_rule"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/usecases/evaluate_quote"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/usecases/set_rule_active"
	"github.com/light-bringer/printshop-pricing/internal/pkg/logger"
	"github.com/light-bringer/printshop-pricing/internal/pkg/validate"
	"github.com/light-bringer/printshop-pricing/internal/transport/dto"
)

// Handler implements PricingServiceServer.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	// Commands
	createRule    *create_rule.Interactor
	setRuleActive *set_rule_active.Interactor
	evaluateQuote *evaluate_quote.Interactor

	// Queries
	getRule   *get_rule.Query
	listRules *list_rules.Query

	log *logger.Logger
}

// NewHandler creates a new gRPC pricing handler.
func NewHandler(
	createRule *create_rule.Interactor,
	setRuleActive *set_rule_active.Interactor,
	evaluateQuote *evaluate_quote.Interactor,
	getRule *get_rule.Query,
	listRules *list_rules.Query,
	log *logger.Logger,
) *Handler {
	return &Handler{
		createRule:    createRule,
		setRuleActive: setRuleActive,
		evaluateQuote: evaluateQuote,
		getRule:       getRule,
		listRules:     listRules,
		log:           log,
	}
}

// EvaluateQuote evaluates an inline quote against the active rules.
func (h *Handler) EvaluateQuote(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dto.EvaluateQuoteRequest
	if err := h.decode(in, &req); err != nil {
		return nil, err
	}

	result, err := h.evaluateQuote.Execute(ctx, &evaluate_quote.Request{Quote: req.Quote.ToDomain()})
	if err != nil {
		return nil, h.fail(ctx, err)
	}
	return h.reply(ctx, dto.FromEvaluation(result))
}

// EvaluateQuoteBatch evaluates several inline quotes.
func (h *Handler) EvaluateQuoteBatch(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dto.EvaluateBatchRequest
	if err := h.decode(in, &req); err != nil {
		return nil, err
	}

	quotes := make([]*domain.Quote, len(req.Quotes))
	for i, q := range req.Quotes {
		quotes[i] = q.ToDomain()
	}

	results, err := h.evaluateQuote.ExecuteBatch(ctx, quotes)
	if err != nil {
		return nil, h.fail(ctx, err)
	}
	return h.reply(ctx, dto.FromBatch(results))
}

// EvaluateStoredQuote evaluates a stored quote by id.
func (h *Handler) EvaluateStoredQuote(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dto.EvaluateStoredQuoteRequest
	if err := h.decode(in, &req); err != nil {
		return nil, err
	}

	result, err := h.evaluateQuote.ExecuteStored(ctx, req.QuoteID)
	if err != nil {
		return nil, h.fail(ctx, err)
	}
	return h.reply(ctx, dto.FromEvaluation(result))
}

// ListRules lists configured rules.
func (h *Handler) ListRules(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dto.ListRulesRequest
	if err := h.decode(in, &req); err != nil {
		return nil, err
	}

	list, err := h.listRules.Execute(ctx, req.ToRequest())
	if err != nil {
		return nil, h.fail(ctx, err)
	}
	return h.reply(ctx, dto.FromRuleList(list))
}

// GetRule fetches one rule.
func (h *Handler) GetRule(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dto.GetRuleRequest
	if err := h.decode(in, &req); err != nil {
		return nil, err
	}

	view, err := h.getRule.Execute(ctx, req.RuleID)
	if err != nil {
		return nil, h.fail(ctx, err)
	}
	return h.reply(ctx, dto.FromRuleView(view))
}

// CreateRule validates and stores a new rule.
func (h *Handler) CreateRule(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dto.CreateRuleRequest
	if err := h.decode(in, &req); err != nil {
		return nil, err
	}

	rule, err := h.createRule.Execute(ctx, req.ToRequest())
	if err != nil {
		return nil, h.fail(ctx, err)
	}
	return h.reply(ctx, dto.FromRule(rule))
}

// SetRuleActive activates or deactivates a rule.
func (h *Handler) SetRuleActive(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dto.ChangeRuleActiveRequest
	if err := h.decode(in, &req); err != nil {
		return nil, err
	}

	rule, err := h.setRuleActive.Execute(ctx, &set_rule_active.Request{RuleID: req.RuleID, Active: *req.Active})
	if err != nil {
		return nil, h.fail(ctx, err)
	}
	return h.reply(ctx, dto.FromRule(rule))
}

func (h *Handler) decode(in *structpb.Struct, dest any) error {
	if err := decodeStruct(in, dest); err != nil {
		return err
	}
	return mapDomainErrorToGRPC(validate.Struct(dest))
}

func (h *Handler) reply(ctx context.Context, v any) (*structpb.Struct, error) {
	out, err := encodeStruct(v)
	if err != nil {
		return nil, h.fail(ctx, err)
	}
	return out, nil
}

func (h *Handler) fail(ctx context.Context, err error) error {
	mapped := mapDomainErrorToGRPC(err)
	if status.Code(mapped) == codes.Internal {
		h.log.Error(ctx, "pricing rpc failed", err)
	}
	return mapped
}
