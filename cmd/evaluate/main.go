package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/light-bringer/printshop-pricing/internal/transport/dto"
	grpcpricing "github.com/light-bringer/printshop-pricing/internal/transport/grpc/pricing"
)

var (
	addr     = flag.String("addr", "localhost:9090", "pricing gRPC address")
	quoteID  = flag.String("quote", "", "stored quote id to evaluate")
	listOnly = flag.Bool("rules", false, "list active rules instead of evaluating")
	timeout  = flag.Duration("timeout", 10*time.Second, "request timeout")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "evaluate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, grpcpricing.RequestIDKey, fmt.Sprintf("cli-%d", time.Now().UnixNano()))

	client := grpcpricing.NewClient(conn)

	if *listOnly {
		return printRules(ctx, client)
	}
	if *quoteID == "" {
		return fmt.Errorf("-quote is required unless -rules is set")
	}

	resp, err := client.EvaluateStoredQuote(ctx, *quoteID)
	if err != nil {
		return err
	}
	printEvaluation(resp)
	return nil
}

func printRules(ctx context.Context, client *grpcpricing.Client) error {
	list, err := client.ListRules(ctx, &dto.ListRulesRequest{ActiveOnly: true})
	if err != nil {
		return err
	}

	fmt.Printf("%d active rules:\n\n", list.TotalCount)
	for i, rule := range list.Rules {
		kind := "exclusive"
		if rule.Stackable {
			kind = "stackable"
		}
		fmt.Printf("%d. %s [%s] priority %d, %s\n", i+1, rule.Name, rule.ID, rule.Priority, kind)
		fmt.Printf("   %s when %s\n", rule.Effect, rule.ConditionsSummary)
	}
	return nil
}

func printEvaluation(resp *dto.EvaluationResponse) {
	fmt.Printf("Quote %s\n", resp.QuoteID)
	fmt.Printf("  Subtotal: %s\n", resp.Subtotal.StringFixed(2))
	fmt.Printf("  Discount: %s\n", resp.DiscountDisplay)

	if len(resp.AppliedRules) == 0 {
		fmt.Println("  No rules applied")
		return
	}
	fmt.Println("  Applied rules:")
	for _, rule := range resp.AppliedRules {
		fmt.Printf("    - %s (%s): -%s\n", rule.Name, rule.Effect, rule.Amount.StringFixed(2))
	}
}
