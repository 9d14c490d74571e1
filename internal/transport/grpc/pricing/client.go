package pricing

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/printshop-pricing/internal/transport/dto"
)

// Client calls the pricing service and decodes replies into DTOs.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client over an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// EvaluateQuote evaluates an inline quote against the active rules.
func (c *Client) EvaluateQuote(ctx context.Context, quote *dto.Quote) (*dto.EvaluationResponse, error) {
	var out dto.EvaluationResponse
	if err := c.call(ctx, MethodEvaluateQuote, &dto.EvaluateQuoteRequest{Quote: quote}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EvaluateQuoteBatch evaluates several inline quotes.
func (c *Client) EvaluateQuoteBatch(ctx context.Context, quotes []*dto.Quote) (*dto.EvaluateBatchResponse, error) {
	var out dto.EvaluateBatchResponse
	if err := c.call(ctx, MethodEvaluateQuoteBatch, &dto.EvaluateBatchRequest{Quotes: quotes}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EvaluateStoredQuote evaluates a stored quote by id.
func (c *Client) EvaluateStoredQuote(ctx context.Context, quoteID string) (*dto.EvaluationResponse, error) {
	var out dto.EvaluationResponse
	if err := c.call(ctx, MethodEvaluateStoredQuote, &dto.EvaluateStoredQuoteRequest{QuoteID: quoteID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRules lists configured rules.
func (c *Client) ListRules(ctx context.Context, req *dto.ListRulesRequest) (*dto.ListRulesResponse, error) {
	var out dto.ListRulesResponse
	if err := c.call(ctx, MethodListRules, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRule fetches one rule.
func (c *Client) GetRule(ctx context.Context, ruleID string) (*dto.RuleResponse, error) {
	var out dto.RuleResponse
	if err := c.call(ctx, MethodGetRule, &dto.GetRuleRequest{RuleID: ruleID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRule stores a new rule.
func (c *Client) CreateRule(ctx context.Context, req *dto.CreateRuleRequest) (*dto.RuleResponse, error) {
	var out dto.RuleResponse
	if err := c.call(ctx, MethodCreateRule, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetRuleActive flips the active flag of a rule.
func (c *Client) SetRuleActive(ctx context.Context, ruleID string, active bool) (*dto.RuleResponse, error) {
	var out dto.RuleResponse
	if err := c.call(ctx, MethodSetRuleActive, &dto.ChangeRuleActiveRequest{RuleID: ruleID, Active: &active}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) call(ctx context.Context, method string, req, dest any) error {
	in, err := encodeStruct(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out); err != nil {
		return err
	}
	return decodeStruct(out, dest)
}
