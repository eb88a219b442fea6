package model

import (
	"context"
	"fmt"
	"testing"

	"github.com/rushteam/hybridrec/core"
)

func syntheticInteractions(n int) []core.Interaction {
	out := make([]core.Interaction, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, core.Interaction{
			UserID:    fmt.Sprintf("u%d", i%5),
			ProductID: fmt.Sprintf("i%d", i%7),
			Value:     float64(1 + i%5),
		})
	}
	return out
}

func TestCrossValidateSVD(t *testing.T) {
	interactions := syntheticInteractions(30)

	res, err := CrossValidateSVD(context.Background(), interactions, testTrainerConfig(), 1, 5, 3, 42)
	if err != nil {
		t.Fatalf("CrossValidateSVD: %v", err)
	}
	if len(res.Folds) != 3 {
		t.Fatalf("got %d folds, want 3", len(res.Folds))
	}

	var rmseSum, maeSum float64
	for _, f := range res.Folds {
		if f.RMSE < 0 || f.MAE < 0 {
			t.Errorf("fold %d: negative metrics %+v", f.Fold, f)
		}
		// 评分域宽 4，误差不可能超过它
		if f.RMSE > 4 || f.MAE > 4 {
			t.Errorf("fold %d: metrics exceed rating range %+v", f.Fold, f)
		}
		if f.MAE > f.RMSE+1e-9 {
			t.Errorf("fold %d: MAE %v above RMSE %v", f.Fold, f.MAE, f.RMSE)
		}
		rmseSum += f.RMSE
		maeSum += f.MAE
	}
	if !almostEqual(res.MeanRMSE, rmseSum/3, 1e-9) {
		t.Errorf("MeanRMSE = %v, want %v", res.MeanRMSE, rmseSum/3)
	}
	if !almostEqual(res.MeanMAE, maeSum/3, 1e-9) {
		t.Errorf("MeanMAE = %v, want %v", res.MeanMAE, maeSum/3)
	}
}

func TestCrossValidateSVDErrors(t *testing.T) {
	interactions := syntheticInteractions(4)

	if _, err := CrossValidateSVD(context.Background(), interactions, testTrainerConfig(), 1, 5, 1, 42); err == nil {
		t.Error("expected error for k < 2")
	}
	if _, err := CrossValidateSVD(context.Background(), interactions, testTrainerConfig(), 1, 5, 10, 42); err == nil {
		t.Error("expected error for too few rows")
	}
}

func TestCrossValidateSVDDeterministic(t *testing.T) {
	interactions := syntheticInteractions(20)

	a, err := CrossValidateSVD(context.Background(), interactions, testTrainerConfig(), 1, 5, 4, 7)
	if err != nil {
		t.Fatalf("CrossValidateSVD: %v", err)
	}
	b, err := CrossValidateSVD(context.Background(), interactions, testTrainerConfig(), 1, 5, 4, 7)
	if err != nil {
		t.Fatalf("CrossValidateSVD: %v", err)
	}
	if a.MeanRMSE != b.MeanRMSE || a.MeanMAE != b.MeanMAE {
		t.Errorf("same seed produced different metrics: %v vs %v", a, b)
	}
}
