package service_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/JasVita/wealthpilot-portal/internal/apperrors"
	"github.com/JasVita/wealthpilot-portal/internal/model"
	"github.com/JasVita/wealthpilot-portal/internal/service"
	"github.com/JasVita/wealthpilot-portal/internal/testutil"
)

func TestAssetService_Rollup(t *testing.T) {
	t.Run("overdraft keeps its sign", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db, 12)
		client := testutil.CreateClient(t, db)

		testutil.NewStatementBlock(client.ID, "2024-06-30").
			WithBank("X").
			WithAccount("ACC1").
			WithRows("cash_equivalents", testutil.Row("EUR", -500)).
			Build(t, db)

		got, err := svc.Rollup(context.Background(), model.PeriodQuery{ClientID: client.ID}, model.ScopeCash)
		if err != nil {
			t.Fatalf("Rollup() returned error: %v", err)
		}

		if got.MonthDate == nil || *got.MonthDate != "2024-06-01" {
			t.Errorf("Expected month_date 2024-06-01, got %v", got.MonthDate)
		}
		acc := got.Result.ByAccount
		if len(acc) != 1 || acc[0] != (model.AccountAmount{Bank: "X", Account: "ACC1", Amount: -500}) {
			t.Errorf("Expected [{X ACC1 -500}], got %v", acc)
		}
		if len(got.Result.ByCurrency.Labels) != 1 || got.Result.ByCurrency.Labels[0] != "EUR" || got.Result.ByCurrency.Data[0] != -500 {
			t.Errorf("Expected by_currency EUR -500, got %+v", got.Result.ByCurrency)
		}
		if got.Result.Totals.GrandTotal != -500 {
			t.Errorf("Expected grand total -500, got %v", got.Result.Totals.GrandTotal)
		}
	})

	t.Run("scope selects categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db, 12)
		client := testutil.CreateClient(t, db)

		testutil.NewStatementBlock(client.ID, "2024-06-30").
			WithRows("cash", testutil.Row("USD", 100)).
			WithWrappedRows("direct_equities", testutil.Row("USD", 900.123)).
			Build(t, db)

		cash, err := svc.Rollup(context.Background(), model.PeriodQuery{ClientID: client.ID}, model.ScopeCash)
		if err != nil {
			t.Fatalf("Rollup() returned error: %v", err)
		}
		all, err := svc.Rollup(context.Background(), model.PeriodQuery{ClientID: client.ID}, model.ScopeAll)
		if err != nil {
			t.Fatalf("Rollup() returned error: %v", err)
		}

		if cash.Result.Totals.GrandTotal != 100 {
			t.Errorf("Expected cash total 100, got %v", cash.Result.Totals.GrandTotal)
		}
		if all.Result.Totals.GrandTotal != 1000.12 {
			t.Errorf("Expected all total 1000.12, got %v", all.Result.Totals.GrandTotal)
		}
	})

	t.Run("empty client yields empty rollup", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db, 12)
		client := testutil.CreateClient(t, db)

		got, err := svc.Rollup(context.Background(), model.PeriodQuery{ClientID: client.ID}, model.ScopeCash)
		if err != nil {
			t.Fatalf("Rollup() returned error: %v", err)
		}
		if got.MonthDate != nil {
			t.Errorf("Expected nil month_date, got %q", *got.MonthDate)
		}
		if got.Result.ByCurrency.Labels == nil || len(got.Result.ByCurrency.Labels) != 0 {
			t.Errorf("Expected empty non-nil labels, got %v", got.Result.ByCurrency.Labels)
		}
		if got.Result.Totals.GrandTotal != 0 {
			t.Errorf("Expected grand total 0, got %v", got.Result.Totals.GrandTotal)
		}
	})

	t.Run("by_currency sums to grand total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db, 12)
		client := testutil.CreateClient(t, db)

		testutil.NewStatementBlock(client.ID, "2024-06-30").WithBank("A").
			WithRows("cash_equivalents", testutil.Row("USD", 10.005), testutil.Row("EUR", 3.333)).
			Build(t, db)
		testutil.NewStatementBlock(client.ID, "2024-06-30").WithBank("B").
			WithRows("cash_equivalents", testutil.Row("USD", 7.1), testutil.Row("HKD", -2.449)).
			Build(t, db)

		got, err := svc.Rollup(context.Background(), model.PeriodQuery{ClientID: client.ID}, model.ScopeCash)
		if err != nil {
			t.Fatalf("Rollup() returned error: %v", err)
		}

		var sum float64
		for _, v := range got.Result.ByCurrency.Data {
			sum += v
		}
		tolerance := 0.01 * float64(len(got.Result.ByCurrency.Data))
		if math.Abs(sum-got.Result.Totals.GrandTotal) > tolerance {
			t.Errorf("Expected by_currency sum %v to match grand total %v", sum, got.Result.Totals.GrandTotal)
		}
	})

	t.Run("concurrent identical requests agree", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db, 12)
		client := testutil.CreateClient(t, db)

		testutil.NewStatementBlock(client.ID, "2024-06-30").
			WithRows("cash", testutil.Row("USD", 42)).
			Build(t, db)

		var wg sync.WaitGroup
		results := make([]float64, 8)
		errs := make([]error, 8)
		for i := range results {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				r, err := svc.Rollup(context.Background(), model.PeriodQuery{ClientID: client.ID}, model.ScopeCash)
				results[i], errs[i] = r.Result.Totals.GrandTotal, err
			}()
		}
		wg.Wait()

		for i := range results {
			if errs[i] != nil {
				t.Errorf("Request %d returned error: %v", i, errs[i])
			}
			if results[i] != 42 {
				t.Errorf("Request %d: expected 42, got %v", i, results[i])
			}
		}
	})
}

func TestAssetService_AvailableMonths(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAssetService(t, db, service.MinFallbackMonths)
	client := testutil.CreateClient(t, db)

	// 14 distinct months; only the newest 12 are candidates.
	for m := 1; m <= 14; m++ {
		year, month := 2023, m
		if m > 12 {
			year, month = 2024, m-12
		}
		asOf := model.YearMonth{Year: year, Month: month}.MonthDate()
		testutil.NewStatementBlock(client.ID, asOf).Build(t, db)
	}

	months, err := svc.AvailableMonths(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("AvailableMonths() returned error: %v", err)
	}
	if len(months) != 12 {
		t.Fatalf("Expected 12 months, got %d", len(months))
	}
	if months[0] != (model.YearMonth{Year: 2024, Month: 2}) {
		t.Errorf("Expected newest month 2024-02, got %v", months[0])
	}
	if months[11] != (model.YearMonth{Year: 2023, Month: 3}) {
		t.Errorf("Expected oldest candidate 2023-03, got %v", months[11])
	}
}

func TestAssetService_RollupHonoursDeadline(t *testing.T) {
	svc := service.NewAssetService(service.NewPeriodResolver(stallingSource{stall: 5 * time.Second}, 12))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.Rollup(ctx, model.PeriodQuery{ClientID: 1}, model.ScopeCash)
	elapsed := time.Since(start)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	if !errors.Is(err, apperrors.ErrFailedToLoad) {
		t.Errorf("Expected ErrFailedToLoad, got %v", err)
	}
	if elapsed > 2*time.Second {
		t.Errorf("Expected Rollup to return at the deadline, took %v", elapsed)
	}
}
